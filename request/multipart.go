package request

import (
	"bytes"

	"github.com/google/uuid"
)

const crlf = "\r\n"

// MultipartItem is a single named part of a multipart body.
// Filename and ContentType are optional; nil values are omitted from the
// part header. A non-nil empty Filename is written as filename="".
type MultipartItem struct {
	Content     []byte
	Name        string
	Filename    *string
	ContentType *ContentType
}

// TextItem creates a plain text part without content type or filename.
func TextItem(text, name string) MultipartItem {
	return MultipartItem{
		Content: []byte(text),
		Name:    name,
	}
}

// BinaryItem creates a part from b. The filename is name plus the content
// type's file extension, or just name when it has none.
func BinaryItem(b Binary, name string) MultipartItem {
	filename := name
	if ext, ok := b.ContentType.FileExtension(); ok {
		filename = name + "." + ext
	}

	return BinaryItemWithFilename(b, name, filename)
}

// BinaryItemWithFilename creates a part from b with an explicit filename.
func BinaryItemWithFilename(b Binary, name, filename string) MultipartItem {
	ct := b.ContentType
	return MultipartItem{
		Content:     b.Data,
		Name:        name,
		Filename:    &filename,
		ContentType: &ct,
	}
}

// Encode returns the part header block, content and trailing line break.
func (i MultipartItem) Encode() []byte {
	var buf bytes.Buffer
	i.writeTo(&buf)
	return buf.Bytes()
}

func (i MultipartItem) writeTo(buf *bytes.Buffer) {
	buf.WriteString(`Content-Disposition: form-data; name="` + i.Name + `"`)
	if i.Filename != nil {
		buf.WriteString(`; filename="` + *i.Filename + `"`)
	}
	if i.ContentType != nil {
		buf.WriteString(crlf + "Content-Type: " + i.ContentType.Value())
	}
	buf.WriteString(crlf + crlf)
	buf.Write(i.Content)
	buf.WriteString(crlf)
}

// MultipartRequestBody is an ordered list of parts framed by Boundary.
// The boundary must not occur inside any part's content.
type MultipartRequestBody struct {
	Boundary string
	Items    []MultipartItem
}

// NewMultipartBody creates a body with a random boundary.
func NewMultipartBody(items ...MultipartItem) MultipartRequestBody {
	return MultipartRequestBody{
		Boundary: uuid.NewString(),
		Items:    items,
	}
}

// Data encodes the parts in order, each preceded by the boundary line,
// and terminates the body with the closing boundary.
func (m MultipartRequestBody) Data() []byte {
	var buf bytes.Buffer
	for _, item := range m.Items {
		buf.WriteString("--" + m.Boundary + crlf)
		item.writeTo(&buf)
	}
	buf.WriteString("--" + m.Boundary + "--" + crlf)

	return buf.Bytes()
}
