package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Save writes the presentation as a .pptx package to w.
func (p *Presentation) Save(w io.Writer) error {
	if len(p.slides) == 0 {
		return ErrNoSlides
	}
	for i, s := range p.slides {
		if s.err != nil {
			return fmt.Errorf("slide %d: %w", i+1, s.err)
		}
	}

	zw := zip.NewWriter(w)
	for _, part := range p.parts() {
		f, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", part.name, err)
		}
		if _, err := f.Write(part.data); err != nil {
			return fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish package: %w", err)
	}
	return nil
}

// Bytes returns the encoded package.
func (p *Presentation) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type part struct {
	name string
	data []byte
}

func (p *Presentation) parts() []part {
	n := len(p.slides)
	parts := []part{
		{"[Content_Types].xml", []byte(p.contentTypes())},
		{"_rels/.rels", []byte(rootRels)},
		{"docProps/core.xml", []byte(fmt.Sprintf(coreProps, escape(p.Title), escape(p.Author)))},
		{"docProps/app.xml", []byte(fmt.Sprintf(appProps, n))},
		{"ppt/presentation.xml", []byte(p.presentation())},
		{"ppt/_rels/presentation.xml.rels", []byte(p.presentationRels())},
		{"ppt/presProps.xml", []byte(presProps)},
		{"ppt/slideMasters/slideMaster1.xml", []byte(slideMaster)},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", []byte(slideMasterRels)},
		{"ppt/slideLayouts/slideLayout1.xml", []byte(slideLayout)},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", []byte(slideLayoutRels)},
		{"ppt/theme/theme1.xml", []byte(theme)},
	}
	for i, s := range p.slides {
		parts = append(parts,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), []byte(slideHead + s.body.String() + slideTail)},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), []byte(s.rels())},
		)
	}
	for i, data := range p.media {
		parts = append(parts, part{fmt.Sprintf("ppt/media/image%d.png", i+1), data})
	}
	return parts
}

func (p *Presentation) contentTypes() string {
	var b strings.Builder
	b.WriteString(contentTypesHead)
	for i := range p.slides {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="%s"/>`, i+1, ctSlide)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

// Presentation relationships: rId1 master, rId2 theme, rId3 presProps,
// then one per slide from rId4.
const firstSlideRel = 4

func (p *Presentation) presentation() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" saveSubsetFonts="1">`, nsA, nsR, nsP)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := range p.slides {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, firstSlideRel+i)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/><p:notesSz cx="6858000" cy="9144000"/>`, p.Width, p.Height)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func (p *Presentation) presentationRels() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	fmt.Fprintf(&b, `<Relationship Id="rId1" Type="%s" Target="slideMasters/slideMaster1.xml"/>`, relMaster)
	fmt.Fprintf(&b, `<Relationship Id="rId2" Type="%s" Target="theme/theme1.xml"/>`, relTheme)
	fmt.Fprintf(&b, `<Relationship Id="rId3" Type="%s" Target="presProps.xml"/>`, relPresProps)
	for i := range p.slides {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s" Target="slides/slide%d.xml"/>`, firstSlideRel+i, relSlide, i+1)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func (s *Slide) rels() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	fmt.Fprintf(&b, `<Relationship Id="rId1" Type="%s" Target="../slideLayouts/slideLayout1.xml"/>`, relLayout)
	for i, media := range s.pictures {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s" Target="../media/image%d.png"/>`, i+2, relImage, media)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}
