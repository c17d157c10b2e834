package extract

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/paperiq/paperiq/models"
)

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)

// streamScanner walks a page content stream line by line, tracking the
// text state operators that matter for layout analysis: Tf for font
// name and size, Tm/Td/TD/T* for position. Show-text operators (Tj, TJ,
// ') accumulate into the current block; any state change flushes it.
type streamScanner struct {
	page     int
	x, y     float64
	fontName string
	fontSize float64

	cur     strings.Builder
	curX    float64
	curY    float64
	curFont string
	curSize float64

	blocks []models.TextBlock
}

// scanStream extracts positioned text blocks from a decoded page
// content stream.
func scanStream(data []byte, page int) []models.TextBlock {
	s := &streamScanner{page: page}

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		s.processLine(line)
	}
	s.flush()

	return s.blocks
}

func (s *streamScanner) processLine(line []byte) {
	switch {
	case bytes.HasSuffix(line, []byte("Tf")):
		s.flush()
		fields := strings.Fields(string(line))
		if len(fields) >= 3 {
			s.fontName = strings.TrimPrefix(fields[len(fields)-3], "/")
			if size, err := strconv.ParseFloat(fields[len(fields)-2], 64); err == nil {
				s.fontSize = size
			}
		}

	case bytes.HasSuffix(line, []byte("Tm")):
		s.flush()
		fields := strings.Fields(string(line))
		if len(fields) >= 7 {
			if x, err := strconv.ParseFloat(fields[len(fields)-3], 64); err == nil {
				s.x = x
			}
			if y, err := strconv.ParseFloat(fields[len(fields)-2], 64); err == nil {
				s.y = y
			}
		}

	case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
		s.flush()
		fields := strings.Fields(string(line))
		if len(fields) >= 3 {
			if dx, err := strconv.ParseFloat(fields[len(fields)-3], 64); err == nil {
				s.x += dx
			}
			if dy, err := strconv.ParseFloat(fields[len(fields)-2], 64); err == nil {
				s.y += dy
			}
		}

	case bytes.Equal(line, []byte("T*")):
		s.flush()
		s.y -= s.fontSize

	case bytes.Equal(line, []byte("BT")), bytes.Equal(line, []byte("ET")):
		s.flush()

	case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
		s.appendText(line)

	case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
		s.flush()
		s.y -= s.fontSize
		s.appendText(line)
	}
}

func (s *streamScanner) appendText(line []byte) {
	for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
		text := decodePDFString(m[1])
		if text == "" {
			continue
		}
		if s.cur.Len() == 0 {
			s.curX = s.x
			s.curY = s.y
			s.curFont = s.fontName
			s.curSize = s.fontSize
		}
		s.cur.WriteString(text)
	}
}

// flush turns the accumulated show-text into a TextBlock. Glyph metrics
// are not available from the raw stream, so the bounding box width is
// approximated from the font size and rune count.
func (s *streamScanner) flush() {
	text := strings.TrimSpace(s.cur.String())
	s.cur.Reset()
	if text == "" {
		return
	}

	width := s.curSize * 0.5 * float64(utf8.RuneCountInString(text))
	lower := strings.ToLower(s.curFont)

	s.blocks = append(s.blocks, models.TextBlock{
		Text:       text,
		X0:         s.curX,
		Y0:         s.curY,
		X1:         s.curX + width,
		Y1:         s.curY + s.curSize,
		PageNumber: s.page,
		FontSize:   s.curSize,
		FontName:   s.curFont,
		Bold:       strings.Contains(lower, "bold") || strings.Contains(lower, "black") || strings.Contains(lower, "heavy"),
		Italic:     strings.Contains(lower, "italic") || strings.Contains(lower, "oblique"),
	})
}

// decodePDFString handles basic PDF escape sequences, including octal
// escapes like \040.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}
