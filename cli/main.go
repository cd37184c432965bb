package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ankit-chaubey/pdf-metadata-surgery/core"
	"github.com/ankit-chaubey/pdf-metadata-surgery/core/docinfo"
	"github.com/ankit-chaubey/pdf-metadata-surgery/server"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "view":
		err = runView(os.Args[2:])
	case "edit":
		err = runEdit(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		core.PrintError(err.Error())
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  surgery view <file.pdf> [-json] [-v]
  surgery edit <file.pdf> [-set Key=Value]... [-delete Key]... [-out file]
  surgery serve [-addr :8080] [-max-upload bytes] [-log file]`)
}

// stringList collects a repeatable flag.
type stringList []string

func (l *stringList) String() string     { return fmt.Sprint(*l) }
func (l *stringList) Set(v string) error { *l = append(*l, v); return nil }

func openFile(path string, limit int64) (*docinfo.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	headLen := len(data)
	if headLen > 512 {
		headLen = 512
	}
	if err := core.CheckUpload(path, int64(len(data)), data[:headLen], limit); err != nil {
		return nil, err
	}
	return docinfo.Open(path, data)
}

func runView(args []string) error {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	jsonMode := fs.Bool("json", false, "JSON output")
	verbose := fs.Bool("v", false, "show raw values")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("view needs exactly one PDF file")
	}
	path := fs.Arg(0)

	doc, err := openFile(path, core.DefaultMaxUpload)
	if err != nil {
		return err
	}
	defer doc.Close()

	p := core.NewPrinter(*jsonMode, *verbose)
	info, err := docinfo.ReadInfo(doc)
	if err != nil {
		p.PrintInfo("warning: " + err.Error())
	}
	p.PrintInfoDict(path, info)
	return nil
}

func runEdit(args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	var sets, deletes stringList
	fs.Var(&sets, "set", "Key=Value to set (repeatable)")
	fs.Var(&deletes, "delete", "Key to remove (repeatable)")
	out := fs.String("out", "", "output file (default: <name>_updated.pdf)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("edit needs exactly one PDF file")
	}
	path := fs.Arg(0)

	req := core.EditRequest{}
	for _, kv := range sets {
		k, v, ok := core.ParseKV(kv)
		if !ok {
			return fmt.Errorf("malformed -set %q, expected Key=Value", kv)
		}
		req[core.NormalizeKey(k)] = v
	}
	for _, k := range deletes {
		req[core.NormalizeKey(k)] = ""
	}
	if len(req) == 0 {
		return fmt.Errorf("nothing to do: pass -set or -delete")
	}

	doc, err := openFile(path, core.DefaultMaxUpload)
	if err != nil {
		return err
	}
	defer doc.Close()

	info, err := docinfo.ReadInfo(doc)
	if err != nil {
		return err
	}
	edited, err := docinfo.Apply(info, req)
	if err != nil {
		return err
	}
	data, err := docinfo.WriteDocument(doc, edited)
	if err != nil {
		return err
	}

	dst := *out
	if dst == "" {
		dst = docinfo.OutputName(path)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return err
	}
	p := core.NewPrinter(false, false)
	p.PrintSuccess(fmt.Sprintf("wrote %s (%d fields)", dst, edited.Len()))
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "listen address")
	maxUpload := fs.Int64("max-upload", core.DefaultMaxUpload, "upload size limit in bytes")
	logFile := fs.String("log", "", "log file (default: stderr)")
	fs.Parse(args)

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	}

	srv := server.New(log, *maxUpload)
	log.WithFields(map[string]interface{}{"addr": *addr, "max_upload": *maxUpload}).Info("listening")
	return http.ListenAndServe(*addr, srv)
}
