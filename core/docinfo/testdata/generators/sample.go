//go:build ignore

// Generator for testdata/sample.pdf and testdata/revision.pdf
//
// sample.pdf is a minimal single-page PDF 1.4 with a classic xref table
// and an information dictionary holding a title, an author, a creation
// date with an explicit UTC offset, a UTC modification date, and a
// producer. The same fixture is copied into the session and server test
// packages. revision.pdf adds a custom integer entry (/Revision 3) to
// the information dictionary.
//
// Run with: go run sample.go
package main

import (
	"bytes"
	"fmt"
	"os"
)

const infoDict = "<< /Title (Report) /Author (Jane Smith) /CreationDate (D:20240315120000-05'00') " +
	"/ModDate (D:20240110080000Z) /Producer (SampleWriter 1.0)"

func write(name, info string) error {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
		info,
	}

	var pdf bytes.Buffer
	pdf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = pdf.Len()
		fmt.Fprintf(&pdf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := pdf.Len()
	fmt.Fprintf(&pdf, "xref\n0 %d\n", len(objects)+1)
	pdf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&pdf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&pdf, "trailer\n<< /Size %d /Root 1 0 R /Info 4 0 R >>\n", len(objects)+1)
	fmt.Fprintf(&pdf, "startxref\n%d\n%%%%EOF\n", xref)

	return os.WriteFile(name, pdf.Bytes(), 0644)
}

func main() {
	if err := write("../sample.pdf", infoDict+" >>"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := write("../revision.pdf", infoDict+" /Revision 3 >>"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
