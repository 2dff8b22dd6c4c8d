package cobertura

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Version is the generator version written into report comments.
var Version = "0.1.0"

const (
	// DTDURL is the Cobertura DTD referenced by the DOCTYPE.
	DTDURL = "http://cobertura.sourceforge.net/xml/coverage-04.dtd"

	// ProjectURL is printed in the generator comment.
	ProjectURL = "https://github.com/zjy-dev/cobertura"

	// ResultFileName is the report file written into the output directory.
	ResultFileName = "coverage.xml"

	indent = "  "
)

// Marshal renders doc with the XML declaration, the DOCTYPE and a
// generator comment, indenting nested elements by two spaces.
func Marshal(doc *Coverage) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrMalformedResult)
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0"?>` + "\n")
	fmt.Fprintf(&buf, "<!DOCTYPE coverage SYSTEM %q>\n", DTDURL)
	fmt.Fprintf(&buf, "<!-- Generated by cobertura version %s (%s) -->\n", Version, ProjectURL)

	body, err := xml.MarshalIndent(doc, "", indent)
	if err != nil {
		return nil, fmt.Errorf("failed to encode coverage document: %w", err)
	}
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
