package render

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// MediaType classifies the target of image syntax.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaAudio MediaType = "audio"
	MediaVideo MediaType = "video"
)

var (
	audioExtensions = []string{"aac", "m4a", "mp3", "oga", "ogg", "wav"}
	videoExtensions = []string{"mp4", "m4v", "ogv", "webm", "mpg", "mpeg"}
)

// GuessMediaType classifies url by the extension after its last '.', if that
// '.' follows the last '/'. Matching is case-insensitive and anything
// unrecognized is an image.
func GuessMediaType(url string) MediaType {
	i := strings.LastIndexAny(url, "./")
	if i < 0 || url[i] != '.' || i == len(url)-1 {
		return MediaImage
	}
	ext := strings.ToLower(url[i+1:])
	for _, e := range audioExtensions {
		if ext == e {
			return MediaAudio
		}
	}
	for _, e := range videoExtensions {
		if ext == e {
			return MediaVideo
		}
	}
	return MediaImage
}

// KindMedia is the kind of Media nodes.
var KindMedia = ast.NewNodeKind("Media")

// Media is an audio or video embed written with image syntax.
type Media struct {
	ast.BaseInline
	MediaType   MediaType
	Destination []byte
	Title       []byte
	// Description is the raw image label.
	Description []byte
}

func (n *Media) Kind() ast.NodeKind { return KindMedia }

func (n *Media) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"MediaType":   string(n.MediaType),
		"Destination": string(n.Destination),
		"Title":       string(n.Title),
		"Description": string(n.Description),
	}, nil)
}

func NewMedia(typ MediaType, destination, title, description []byte) *Media {
	return &Media{MediaType: typ, Destination: destination, Title: title, Description: description}
}

// mediaParserPriority puts the parser ahead of goldmark's link parser (200),
// which still handles every image.
const (
	mediaParserPriority   = 150
	mediaRendererPriority = 500
)

type mediaParser struct{}

func (p *mediaParser) Trigger() []byte {
	return []byte{'!'}
}

// Parse claims ![label](dest "title"), ![label][ref], ![label][] and
// ![label] when the destination is audio or video. Everything else,
// including unresolved references, is left to the link parser.
func (p *mediaParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 2 || line[0] != '!' || line[1] != '[' {
		return nil
	}
	labelEnd, ok := scanLabel(line, 1)
	if !ok {
		return nil
	}
	label := line[2:labelEnd]
	pos := labelEnd + 1

	var dest, title []byte
	if pos < len(line) && line[pos] == '(' {
		dest, title, pos, ok = scanInlineLink(line, pos+1)
		if !ok {
			return nil
		}
	} else {
		refLabel := label
		if pos < len(line) && line[pos] == '[' {
			if end, found := scanLabel(line, pos); found {
				if end > pos+1 {
					refLabel = line[pos+1 : end]
				}
				pos = end + 1
			}
		}
		ref, found := pc.Reference(util.ToLinkReference(refLabel))
		if !found {
			return nil
		}
		dest, title = ref.Destination(), ref.Title()
	}

	typ := GuessMediaType(string(dest))
	if typ == MediaImage {
		return nil
	}
	block.Advance(pos)
	return NewMedia(typ, dest, title, append([]byte(nil), label...))
}

// scanLabel returns the index of the ']' closing the bracket at line[start].
func scanLabel(line []byte, start int) (int, bool) {
	depth := 0
	for i := start; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// scanInlineLink parses `dest "title")` starting right after the '('.
func scanInlineLink(line []byte, pos int) (dest, title []byte, next int, ok bool) {
	pos = skipSpaces(line, pos)
	if pos >= len(line) {
		return nil, nil, 0, false
	}
	if line[pos] != ')' {
		if dest, pos, ok = scanDestination(line, pos); !ok {
			return nil, nil, 0, false
		}
	}
	afterDest := pos
	pos = skipSpaces(line, pos)
	if pos > afterDest && pos < len(line) && line[pos] != ')' {
		if title, pos, ok = scanTitle(line, pos); !ok {
			return nil, nil, 0, false
		}
		pos = skipSpaces(line, pos)
	}
	if pos >= len(line) || line[pos] != ')' {
		return nil, nil, 0, false
	}
	return unescape(dest), unescape(title), pos + 1, true
}

func scanDestination(line []byte, pos int) ([]byte, int, bool) {
	if line[pos] == '<' {
		for i := pos + 1; i < len(line); i++ {
			switch line[i] {
			case '\\':
				i++
			case '<', '\n':
				return nil, 0, false
			case '>':
				return line[pos+1 : i], i + 1, true
			}
		}
		return nil, 0, false
	}
	depth := 0
	i := pos
	for ; i < len(line); i++ {
		c := line[i]
		if c == '\\' && i+1 < len(line) {
			i++
			continue
		}
		if util.IsSpace(c) || c < 0x20 {
			break
		}
		if c == '(' {
			depth++
		} else if c == ')' {
			if depth == 0 {
				break
			}
			depth--
		}
	}
	if i == pos || depth != 0 {
		return nil, 0, false
	}
	return line[pos:i], i, true
}

func scanTitle(line []byte, pos int) ([]byte, int, bool) {
	open := line[pos]
	closer := open
	switch open {
	case '"', '\'':
	case '(':
		closer = ')'
	default:
		return nil, 0, false
	}
	for i := pos + 1; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\':
			i++
		case c == closer:
			return line[pos+1 : i], i + 1, true
		case open == '(' && c == '(':
			return nil, 0, false
		}
	}
	return nil, 0, false
}

func skipSpaces(line []byte, pos int) int {
	for pos < len(line) && util.IsSpace(line[pos]) {
		pos++
	}
	return pos
}

func unescape(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	return util.ResolveEntityNames(b)
}

type mediaRenderer struct {
	videoAttrs string
	audioAttrs string
}

func (r *mediaRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMedia, r.renderMedia)
}

// renderMedia writes the <video>/<audio> element with a download fallback.
// Dangerous URLs are dropped regardless of the unsafe option.
func (r *mediaRenderer) renderMedia(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*Media)
	tag := string(n.MediaType)
	attrs := r.audioAttrs
	if n.MediaType == MediaVideo {
		attrs = r.videoAttrs
	}
	if attrs = strings.TrimSpace(attrs); attrs != "" {
		attrs = " " + attrs
	}

	var src []byte
	if !html.IsDangerousURL(n.Destination) {
		src = util.EscapeHTML(util.URLEscape(n.Destination, true))
	}

	_, _ = w.WriteString("<" + tag + ` src="`)
	_, _ = w.Write(src)
	_ = w.WriteByte('"')
	if len(n.Title) > 0 {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(attrs + ">\n")
	_, _ = w.WriteString("Your browser does not support playing HTML5 " + tag + ".\n")
	_, _ = w.WriteString(`You can <a href="`)
	_, _ = w.Write(src)
	_, _ = w.WriteString(`" download>download the file</a> instead.`)
	if len(n.Description) > 0 {
		_, _ = w.WriteString("\nHere is a description of the content: ")
		_, _ = w.Write(util.EscapeHTML(n.Description))
	}
	_, _ = w.WriteString("\n</" + tag + ">")
	return ast.WalkSkipChildren, nil
}

type media struct {
	videoAttrs string
	audioAttrs string
}

// NewMediaExtension returns an extension rendering audio and video targets
// of image syntax as HTML5 elements carrying the given extra attributes.
func NewMediaExtension(videoAttrs, audioAttrs string) goldmark.Extender {
	return &media{videoAttrs: videoAttrs, audioAttrs: audioAttrs}
}

func (e *media) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&mediaParser{}, mediaParserPriority),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&mediaRenderer{videoAttrs: e.videoAttrs, audioAttrs: e.audioAttrs}, mediaRendererPriority),
	))
}
