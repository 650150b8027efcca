package request

type contentKind int

const (
	kindOctetStream contentKind = iota
	kindJSON
	kindText
	kindImageJPEG
	kindImagePNG
	kindMultipart
	kindCustom
)

// ContentType is a MIME type descriptor with an optional file extension.
// The zero value is application/octet-stream without an extension.
// ContentType values are comparable with ==.
type ContentType struct {
	kind  contentKind
	param string
	ext   string
}

// OctetStream returns application/octet-stream.
func OctetStream() ContentType {
	return ContentType{kind: kindOctetStream}
}

// OctetStreamWithExtension returns application/octet-stream carrying ext
// for multipart filename synthesis.
func OctetStreamWithExtension(ext string) ContentType {
	return ContentType{kind: kindOctetStream, ext: ext}
}

// JSON returns application/json.
func JSON() ContentType {
	return ContentType{kind: kindJSON}
}

// Text returns text/plain.
func Text() ContentType {
	return ContentType{kind: kindText}
}

// ImageJPEG returns image/jpeg.
func ImageJPEG() ContentType {
	return ContentType{kind: kindImageJPEG}
}

// ImagePNG returns image/png.
func ImagePNG() ContentType {
	return ContentType{kind: kindImagePNG}
}

// Multipart returns multipart/form-data with the given boundary.
func Multipart(boundary string) ContentType {
	return ContentType{kind: kindMultipart, param: boundary}
}

// Custom returns a caller defined MIME type. ext may be empty.
func Custom(value, ext string) ContentType {
	return ContentType{kind: kindCustom, param: value, ext: ext}
}

// Value returns the MIME string used for the Content-Type header.
func (c ContentType) Value() string {
	switch c.kind {
	case kindJSON:
		return "application/json"
	case kindText:
		return "text/plain"
	case kindImageJPEG:
		return "image/jpeg"
	case kindImagePNG:
		return "image/png"
	case kindMultipart:
		return "multipart/form-data; boundary=" + c.param
	case kindCustom:
		return c.param
	default:
		return "application/octet-stream"
	}
}

// FileExtension returns the extension used when deriving a multipart
// filename, and whether the content type has one.
func (c ContentType) FileExtension() (string, bool) {
	switch c.kind {
	case kindJSON:
		return "json", true
	case kindText:
		return "txt", true
	case kindImageJPEG:
		return "jpg", true
	case kindImagePNG:
		return "png", true
	case kindMultipart:
		return "", false
	default:
		return c.ext, c.ext != ""
	}
}

// String implements fmt.Stringer.
func (c ContentType) String() string {
	return c.Value()
}
