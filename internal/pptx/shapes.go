package pptx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func writeXfrm(b *strings.Builder, r Rect) {
	fmt.Fprintf(b, `<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, r.X, r.Y, r.W, r.H)
}

func writeFill(b *strings.Builder, color string) {
	if color == "" {
		b.WriteString(`<a:noFill/>`)
		return
	}
	c, _ := normalizeColor(color)
	fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, c)
}

func writeLine(b *strings.Builder, l *Line) {
	if l == nil {
		b.WriteString(`<a:ln><a:noFill/></a:ln>`)
		return
	}
	c, _ := normalizeColor(l.Color)
	fmt.Fprintf(b, `<a:ln w="%d"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:ln>`, Points(l.Width), c)
}

// writeRunProps writes an a:rPr or a:endParaRPr element.
func writeRunProps(b *strings.Builder, tag string, f Font) {
	fmt.Fprintf(b, `<a:%s lang="en-US"`, tag)
	if f.Size > 0 {
		// Hundredths of a point.
		fmt.Fprintf(b, ` sz="%d"`, int(f.Size*100+0.5))
	}
	if f.Bold {
		b.WriteString(` b="1"`)
	}
	if f.Italic {
		b.WriteString(` i="1"`)
	}
	b.WriteString(` dirty="0">`)
	if f.Color != "" {
		writeFill(b, f.Color)
	}
	if f.Face != "" {
		face := escape(f.Face)
		fmt.Fprintf(b, `<a:latin typeface="%s"/><a:cs typeface="%s"/>`, face, face)
	}
	fmt.Fprintf(b, `</a:%s>`, tag)
}

func writeTextBox(b *strings.Builder, id int, tb TextBox) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, id-1)
	b.WriteString(`<p:spPr>`)
	writeXfrm(b, tb.Frame)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	writeFill(b, tb.Fill)
	if tb.Line != nil {
		writeLine(b, tb.Line)
	}
	b.WriteString(`</p:spPr>`)

	ins := DefaultInsets
	if tb.Insets != nil {
		ins = *tb.Insets
	}
	wrap := "none"
	if tb.Wrap {
		wrap = "square"
	}
	anchor := tb.Anchor
	if anchor == "" {
		anchor = AnchorTop
	}
	fmt.Fprintf(b, `<p:txBody><a:bodyPr wrap="%s" lIns="%d" tIns="%d" rIns="%d" bIns="%d" rtlCol="0" anchor="%s"><a:noAutofit/></a:bodyPr><a:lstStyle/>`,
		wrap, ins.Left, ins.Top, ins.Right, ins.Bottom, anchor)

	for _, line := range strings.Split(tb.Text, "\n") {
		b.WriteString(`<a:p>`)
		if tb.Align != "" {
			fmt.Fprintf(b, `<a:pPr algn="%s"/>`, tb.Align)
		}
		if line != "" {
			b.WriteString(`<a:r>`)
			writeRunProps(b, "rPr", tb.Font)
			fmt.Fprintf(b, `<a:t>%s</a:t></a:r>`, escape(line))
		}
		writeRunProps(b, "endParaRPr", tb.Font)
		b.WriteString(`</a:p>`)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

func writeShape(b *strings.Builder, id int, sh Shape) {
	geom := sh.Geometry
	if geom == "" {
		geom = GeomRect
	}
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Shape %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`, id, id-1)
	b.WriteString(`<p:spPr>`)
	writeXfrm(b, sh.Frame)
	fmt.Fprintf(b, `<a:prstGeom prst="%s"><a:avLst/></a:prstGeom>`, geom)
	writeFill(b, sh.Fill)
	writeLine(b, sh.Line)
	b.WriteString(`</p:spPr></p:sp>`)
}

func writePicture(b *strings.Builder, id int, frame Rect, rel, descr string) {
	fmt.Fprintf(b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d" descr="%s"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`,
		id, id-1, escape(descr))
	fmt.Fprintf(b, `<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, rel)
	b.WriteString(`<p:spPr>`)
	writeXfrm(b, frame)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`)
}
