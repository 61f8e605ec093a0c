// Slide deck output. A .pptx file is an OOXML zip package; the parts
// written here are the minimal set PowerPoint and LibreOffice accept: one
// presentation, one master/layout/theme, and one slide per article with its
// title, resized thumbnail, and description.
package output

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"thscraper/pkg/models"
)

// Slide geometry in EMUs (914400 per inch, 10x7.5in canvas).
const (
	slideWidth  = 9144000
	slideHeight = 6858000
	emuPerPixel = 9525
)

// DeckPath returns the output file for a uid inside the directory.
func DeckPath(dir, uid string) string {
	return filepath.Join(dir, uid+".pptx")
}

// WriteDeck writes a slide deck to path: a title slide naming the uid, then
// one slide per article.
func WriteDeck(path, uid string, articles []models.Article) error {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	slideCount := len(articles) + 1

	if err := writeStaticParts(zw, slideCount); err != nil {
		return err
	}
	if err := addPart(zw, "ppt/slides/slide1.xml", titleSlideXML(uid)); err != nil {
		return err
	}
	if err := addPart(zw, "ppt/slides/_rels/slide1.xml.rels", slideRelsXML(0, "")); err != nil {
		return err
	}

	for i, article := range articles {
		num := i + 2
		ext := ""
		if len(article.Image) > 0 {
			ext = imageExt(article.Image)
		}

		if err := addPart(zw, fmt.Sprintf("ppt/slides/slide%d.xml", num), articleSlideXML(article)); err != nil {
			return err
		}
		if err := addPart(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", num), slideRelsXML(num, ext)); err != nil {
			return err
		}
		if ext != "" {
			name := fmt.Sprintf("ppt/media/image%d.%s", num, ext)
			if err := addBinaryPart(zw, name, article.Image); err != nil {
				return err
			}
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize deck: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write deck: %w", err)
	}

	return nil
}

// imageExt sniffs the encoded thumbnail format.
func imageExt(data []byte) string {
	if len(data) >= 8 && bytes.Equal(data[:8], []byte("\x89PNG\r\n\x1a\n")) {
		return "png"
	}
	if len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))) {
		return "gif"
	}
	return "jpeg"
}

func addPart(zw *zip.Writer, name, content string) error {
	return addBinaryPart(zw, name, []byte(xml.Header+content))
}

func addBinaryPart(zw *zip.Writer, name string, content []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create part %s: %w", name, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("failed to write part %s: %w", name, err)
	}
	return nil
}

func writeStaticParts(zw *zip.Writer, slideCount int) error {
	if err := addPart(zw, "[Content_Types].xml", contentTypesXML(slideCount)); err != nil {
		return err
	}
	if err := addPart(zw, "_rels/.rels", rootRelsXML); err != nil {
		return err
	}
	if err := addPart(zw, "ppt/presentation.xml", presentationXML(slideCount)); err != nil {
		return err
	}
	if err := addPart(zw, "ppt/_rels/presentation.xml.rels", presentationRelsXML(slideCount)); err != nil {
		return err
	}
	if err := addPart(zw, "ppt/slideMasters/slideMaster1.xml", slideMasterXML); err != nil {
		return err
	}
	if err := addPart(zw, "ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML); err != nil {
		return err
	}
	if err := addPart(zw, "ppt/slideLayouts/slideLayout1.xml", slideLayoutXML); err != nil {
		return err
	}
	if err := addPart(zw, "ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML); err != nil {
		return err
	}
	return addPart(zw, "ppt/theme/theme1.xml", themeXML)
}

func contentTypesXML(slideCount int) string {
	var b bytes.Buffer
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	b.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
	b.WriteString(`<Default Extension="gif" ContentType="image/gif"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

const rootRelsXML = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
	`</Relationships>`

func presentationXML(slideCount int) string {
	var b bytes.Buffer
	b.WriteString(`<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 255+i, i+1)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/><p:notesSz cx="%d" cy="%d"/>`, slideWidth, slideHeight, slideHeight, slideWidth)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func presentationRelsXML(slideCount int) string {
	var b bytes.Buffer
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, i+1, i)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

const slideMasterXML = `<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
	`<p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree></p:cSld>` +
	`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
	`</p:sldMaster>`

const slideMasterRelsXML = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>` +
	`</Relationships>`

const slideLayoutXML = `<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" type="blank">` +
	`<p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree></p:cSld>` +
	`</p:sldLayout>`

const slideLayoutRelsXML = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>` +
	`</Relationships>`

const themeXML = `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office">` +
	`<a:themeElements><a:clrScheme name="Office">` +
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
	`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="44546A"/></a:dk2><a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="4472C4"/></a:accent1><a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3><a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5><a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Office"><a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont></a:fontScheme>` +
	`<a:fmtScheme name="Office"><a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>` +
	`<a:lnStyleLst><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>` +
	`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>` +
	`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst></a:fmtScheme>` +
	`</a:themeElements></a:theme>`

func slideRelsXML(num int, ext string) string {
	var b bytes.Buffer
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	if ext != "" {
		fmt.Fprintf(&b, `<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image%d.%s"/>`, num, ext)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func titleSlideXML(uid string) string {
	return slideXML(
		textShape(2, "Title", 457200, 1600200, 8229600, 1143000, "TrendHunter Ideas &amp; Insights", 4400),
		textShape(3, "Subtitle", 457200, 2971800, 8229600, 914400, escapeXML(uid), 2800),
		"",
	)
}

func articleSlideXML(article models.Article) string {
	picture := ""
	if len(article.Image) > 0 {
		w := article.ImageWidth * emuPerPixel
		h := article.ImageHeight * emuPerPixel
		x := (slideWidth - w) / 2
		picture = pictureShape(4, escapeXML(article.ID), x, 1371600, w, h)
	}

	return slideXML(
		textShape(2, "Title", 457200, 274638, 8229600, 914400, escapeXML(article.Title), 3200),
		textShape(3, "Description", 457200, 4800600, 8229600, 1700000, escapeXML(article.Description), 1600),
		picture,
	)
}

func slideXML(shapes ...string) string {
	var b bytes.Buffer
	b.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)
	for _, shape := range shapes {
		b.WriteString(shape)
	}
	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return b.String()
}

func textShape(id int, name string, x, y, w, h int, text string, fontSize int) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`+
		`<p:txBody><a:bodyPr wrap="square"/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US" sz="%d"/><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`,
		id, name, x, y, w, h, fontSize, text)
}

func pictureShape(id int, name string, x, y, w, h int) string {
	return fmt.Sprintf(`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
		`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		id, name, x, y, w, h)
}

func escapeXML(s string) string {
	var b bytes.Buffer
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return ""
	}
	return b.String()
}
