package canvasrenderer

import (
	"math"
	"strings"
	"unicode"
)

// TextLine 是折行后的一行文本，Width 与 measure 的单位一致。
type TextLine struct {
	Content string
	Width   float64
}

// greedyWrap 优先在空白处折行，单词超过限制时在词内拆分；显式换行总会开始新行。
// width <= 0 表示不限宽。
func greedyWrap(content string, width float64, measure func(string) float64) []TextLine {
	limit := width
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	tokens := tokenizeContent(content)
	var lines []TextLine
	var builder strings.Builder
	currentWidth := 0.0

	emit := func(force bool) {
		if builder.Len() == 0 {
			if force {
				lines = append(lines, TextLine{})
			}
			return
		}
		lines = append(lines, TextLine{Content: builder.String(), Width: currentWidth})
		builder.Reset()
		currentWidth = 0
	}

	appendToken := func(token string) {
		builder.WriteString(token)
		currentWidth += measure(token)
	}

	// pendingBreak 记录一行因宽度刚好用满而结束，紧随的显式换行不再产生空行。
	pendingBreak := false
	for _, token := range tokens {
		if token == "\n" {
			if pendingBreak {
				pendingBreak = false
				continue
			}
			emit(true)
			continue
		}
		pendingBreak = false

		tokenWidth := measure(token)
		if currentWidth > 0 && currentWidth+tokenWidth > limit {
			emit(false)
		}
		if tokenWidth <= limit {
			appendToken(token)
			if currentWidth >= limit {
				emit(false)
				pendingBreak = true
			}
			continue
		}

		for _, chunk := range splitTokenByWidth(token, limit, measure) {
			chunkWidth := measure(chunk)
			if currentWidth > 0 && currentWidth+chunkWidth > limit {
				emit(false)
			}
			appendToken(chunk)
			if currentWidth >= limit {
				emit(false)
				pendingBreak = true
			}
		}
	}

	if builder.Len() > 0 || len(lines) == 0 || !pendingBreak {
		emit(true)
	}
	return lines
}

func tokenizeContent(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitTokenByWidth(token string, limit float64, measure func(string) float64) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var builder strings.Builder
	for _, r := range token {
		builder.WriteRune(r)
		if measure(builder.String()) > limit && builder.Len() > 1 {
			runes := []rune(builder.String())
			parts = append(parts, string(runes[:len(runes)-1]))
			builder.Reset()
			builder.WriteRune(r)
		}
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}
