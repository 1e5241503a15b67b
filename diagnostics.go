package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/handegar/fv1asm/lexer"
)

// printDiagnostic prints a caret excerpt for errors that carry a
// source span. Errors without position information print nothing; the
// caller logs them as-is.
func printDiagnostic(src string, err error) {
	spanned, ok := err.(interface{ Span() lexer.Span })
	if !ok {
		return
	}
	span := spanned.Span()
	if span.Start > len(src) {
		return
	}

	lineStart := strings.LastIndexByte(src[:span.Start], '\n') + 1
	lineEnd := strings.IndexByte(src[span.Start:], '\n')
	if lineEnd < 0 {
		lineEnd = len(src)
	} else {
		lineEnd += span.Start
	}
	lineNo := strings.Count(src[:span.Start], "\n") + 1

	width := span.End - span.Start
	if width < 1 {
		width = 1
	}
	if span.Start+width > lineEnd {
		width = lineEnd - span.Start
	}

	color.Red("error: %s", err)
	fmt.Printf("%4d | %s\n", lineNo, src[lineStart:lineEnd])
	fmt.Printf("     | %s%s\n",
		strings.Repeat(" ", span.Start-lineStart),
		color.YellowString(strings.Repeat("^", width)))
}
