package annotation

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
)

/*
XMLWriter streams the tag document the hex editor loads:

	<?xml version="1.0" encoding="UTF-8"?>
	<!-- Dump created on: ... -->
	<!-- Options used: ... -->
	<wxHexEditor_XML_TAG>
	  <filename path="...">
	    <TAG id="0"> ... </TAG>
	  </filename>
	</wxHexEditor_XML_TAG>

Tags are written as they are emitted; the editor renders them in document
order so nothing is buffered beyond bufio.
*/

const (
	timeLayout     = "15:04:05 Monday, January 02 2006"
	maxOptionChars = 50
)

// DocHeader is the metadata written before the first tag.
type DocHeader struct {
	Created time.Time
	Options []string
	Path    string
	RunID   string
}

type XMLWriter struct {
	w *bufio.Writer
}

func NewXMLWriter(w io.Writer) *XMLWriter {
	return &XMLWriter{w: bufio.NewWriter(w)}
}

// FormatOptions echoes the command-line options the way the document
// header shows them: space separated, at most 50 characters, "None" when
// there are none.
func FormatOptions(options []string) string {
	var sb strings.Builder
	for _, opt := range options {
		if sb.Len()+len(opt) > maxOptionChars {
			break
		}
		sb.WriteString(opt)
		sb.WriteString(" ")
	}
	if sb.Len() == 0 {
		return "None"
	}
	return sb.String()
}

func escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

func (x *XMLWriter) WriteHeader(h DocHeader) error {
	fmt.Fprintf(x.w, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(x.w, "<!-- Dump created on: %s -->\n", h.Created.Format(timeLayout))
	fmt.Fprintf(x.w, "<!-- Options used: %s -->\n", FormatOptions(h.Options))
	if h.RunID != "" {
		fmt.Fprintf(x.w, "<!-- Run: %s -->\n", h.RunID)
	}
	fmt.Fprintf(x.w, "<wxHexEditor_XML_TAG>\n")
	_, err := fmt.Fprintf(x.w, "  <filename path=\"%s\">\n", escape(h.Path))
	return errors.Wrap(err, "write document header")
}

func (x *XMLWriter) WriteTag(t Tag) error {
	fmt.Fprintf(x.w, "    <TAG id=\"%d\">\n", t.ID)
	fmt.Fprintf(x.w, "      <start_offset>%d</start_offset>\n", t.Start)
	fmt.Fprintf(x.w, "      <end_offset>%d</end_offset>\n", t.End)
	fmt.Fprintf(x.w, "      <tag_text>%s</tag_text>\n", escape(t.Text))
	fmt.Fprintf(x.w, "      <font_colour>%s</font_colour>\n", t.FontColour)
	fmt.Fprintf(x.w, "      <note_colour>%s</note_colour>\n", t.NoteColour)
	_, err := fmt.Fprintf(x.w, "    </TAG>\n")
	return errors.Wrapf(err, "write tag %d", t.ID)
}

// WriteFooter closes the wrapper elements and flushes. It is called even
// after a fatal error so the document stays well formed.
func (x *XMLWriter) WriteFooter() error {
	fmt.Fprintf(x.w, "  </filename>\n")
	fmt.Fprintf(x.w, "</wxHexEditor_XML_TAG>\n")
	return errors.Wrap(x.w.Flush(), "flush document")
}
