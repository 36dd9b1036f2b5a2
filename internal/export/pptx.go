// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/pdiddy/vyt-pipe/internal/layout"
	"github.com/pdiddy/vyt-pipe/pkg/types"
)

// XML namespaces used in the generated PPTX package.
const (
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels    = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
)

const emuPerInch = 914400.0

// relationshipXML mirrors one entry of a .rels part.
type relationshipXML struct {
	XMLName xml.Name `xml:"Relationship"`
	ID      string   `xml:"Id,attr"`
	Type    string   `xml:"Type,attr"`
	Target  string   `xml:"Target,attr"`
}

type relationshipsXML struct {
	XMLName xml.Name          `xml:"Relationships"`
	Xmlns   string            `xml:"xmlns,attr"`
	Rels    []relationshipXML `xml:"Relationship"`
}

type contentTypesXML struct {
	XMLName   xml.Name             `xml:"Types"`
	Xmlns     string               `xml:"xmlns,attr"`
	Defaults  []contentDefaultXML  `xml:"Default"`
	Overrides []contentOverrideXML `xml:"Override"`
}

type contentDefaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentOverrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// writePPTX writes an editable slide deck: one slide per grid cell, each
// holding a shape group with the backdrop rectangle and the stencil as a
// single freeform whose subpaths carry the hole contours.
func writePPTX(path string, p *layout.Panel, set types.ContourSet, backdrop color.RGBA) error {
	return writeAtomic("pptx", path, func(f *os.File) error {
		zw := zip.NewWriter(f)
		if err := addPPTXParts(zw, p, set, backdrop); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	})
}

func addPPTXParts(zw *zip.Writer, p *layout.Panel, set types.ContourSet, backdrop color.RGBA) error {
	slides := len(p.Cells)

	if err := addXMLPart(zw, "[Content_Types].xml", buildContentTypes(slides)); err != nil {
		return err
	}
	if err := addXMLPart(zw, "_rels/.rels", relationshipsXML{
		Xmlns: nsPackageRels,
		Rels: []relationshipXML{{
			ID:     "rId1",
			Type:   nsRelationships + "/officeDocument",
			Target: "ppt/presentation.xml",
		}},
	}); err != nil {
		return err
	}

	if err := addRawPart(zw, "ppt/presentation.xml", buildPresentation(p, slides)); err != nil {
		return err
	}
	if err := addXMLPart(zw, "ppt/_rels/presentation.xml.rels", buildPresentationRels(slides)); err != nil {
		return err
	}

	if err := addRawPart(zw, "ppt/slideMasters/slideMaster1.xml", slideMasterXML); err != nil {
		return err
	}
	if err := addXMLPart(zw, "ppt/slideMasters/_rels/slideMaster1.xml.rels", relationshipsXML{
		Xmlns: nsPackageRels,
		Rels: []relationshipXML{
			{ID: "rId1", Type: nsRelationships + "/slideLayout", Target: "../slideLayouts/slideLayout1.xml"},
			{ID: "rId2", Type: nsRelationships + "/theme", Target: "../theme/theme1.xml"},
		},
	}); err != nil {
		return err
	}
	if err := addRawPart(zw, "ppt/slideLayouts/slideLayout1.xml", slideLayoutXML); err != nil {
		return err
	}
	if err := addXMLPart(zw, "ppt/slideLayouts/_rels/slideLayout1.xml.rels", relationshipsXML{
		Xmlns: nsPackageRels,
		Rels: []relationshipXML{
			{ID: "rId1", Type: nsRelationships + "/slideMaster", Target: "../slideMasters/slideMaster1.xml"},
		},
	}); err != nil {
		return err
	}
	if err := addRawPart(zw, "ppt/theme/theme1.xml", themeXML); err != nil {
		return err
	}

	for i, cell := range p.Cells {
		name := fmt.Sprintf("ppt/slides/slide%d.xml", i+1)
		if err := addRawPart(zw, name, buildSlide(p, cell, set, backdrop, i)); err != nil {
			return err
		}
		relName := fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1)
		if err := addXMLPart(zw, relName, relationshipsXML{
			Xmlns: nsPackageRels,
			Rels: []relationshipXML{
				{ID: "rId1", Type: nsRelationships + "/slideLayout", Target: "../slideLayouts/slideLayout1.xml"},
			},
		}); err != nil {
			return err
		}
	}
	return nil
}

func addXMLPart(zw *zip.Writer, name string, v any) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func addRawPart(zw *zip.Writer, name, content string) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(xml.Header + content))
	return err
}

func buildContentTypes(slides int) contentTypesXML {
	ct := contentTypesXML{
		Xmlns: nsContentTypes,
		Defaults: []contentDefaultXML{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []contentOverrideXML{
			{PartName: "/ppt/presentation.xml", ContentType: "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"},
			{PartName: "/ppt/slideMasters/slideMaster1.xml", ContentType: "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"},
			{PartName: "/ppt/slideLayouts/slideLayout1.xml", ContentType: "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"},
			{PartName: "/ppt/theme/theme1.xml", ContentType: "application/vnd.openxmlformats-officedocument.theme+xml"},
		},
	}
	for i := 1; i <= slides; i++ {
		ct.Overrides = append(ct.Overrides, contentOverrideXML{
			PartName:    fmt.Sprintf("/ppt/slides/slide%d.xml", i),
			ContentType: "application/vnd.openxmlformats-officedocument.presentationml.slide+xml",
		})
	}
	return ct
}

func buildPresentation(p *layout.Panel, slides int) string {
	cx := mmToEMU(p.Page.WidthMM)
	cy := mmToEMU(p.Page.HeightMM)
	var sb strings.Builder
	fmt.Fprintf(&sb, `<p:presentation xmlns:p=%q xmlns:a=%q xmlns:r=%q>`,
		nsPresentationML, nsDrawingML, nsRelationships)
	sb.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	sb.WriteString(`<p:sldIdLst>`)
	for i := 0; i < slides; i++ {
		fmt.Fprintf(&sb, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, 2+i)
	}
	sb.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&sb, `<p:sldSz cx="%d" cy="%d"/><p:notesSz cx="%d" cy="%d"/>`, cx, cy, cy, cx)
	sb.WriteString(`</p:presentation>`)
	return sb.String()
}

func buildPresentationRels(slides int) relationshipsXML {
	rels := relationshipsXML{Xmlns: nsPackageRels}
	rels.Rels = append(rels.Rels, relationshipXML{
		ID:     "rId1",
		Type:   nsRelationships + "/slideMaster",
		Target: "slideMasters/slideMaster1.xml",
	})
	for i := 0; i < slides; i++ {
		rels.Rels = append(rels.Rels, relationshipXML{
			ID:     fmt.Sprintf("rId%d", 2+i),
			Type:   nsRelationships + "/slide",
			Target: fmt.Sprintf("slides/slide%d.xml", i+1),
		})
	}
	return rels
}

// buildSlide emits one slide: a shape group holding the backdrop rectangle
// and the stencil freeform for this grid cell.
func buildSlide(p *layout.Panel, cell layout.Cell, set types.ContourSet, backdrop color.RGBA, index int) string {
	dpi := float64(p.Cfg.DPI)
	pxToEMU := func(v float64) int64 {
		return int64(math.Round(v / dpi * emuPerInch))
	}
	offX := mmToEMU(p.Cfg.MarginMM - p.Cfg.OverlapMM)
	offY := offX
	extX := pxToEMU(float64(p.ViewW))
	extY := pxToEMU(float64(p.ViewH))

	var sb strings.Builder
	fmt.Fprintf(&sb, `<p:sld xmlns:p=%q xmlns:a=%q xmlns:r=%q><p:cSld><p:spTree>`,
		nsPresentationML, nsDrawingML, nsRelationships)
	sb.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)

	// One group per cell, sized to the printable view.
	fmt.Fprintf(&sb, `<p:grpSp><p:nvGrpSpPr><p:cNvPr id="2" name="cell %d"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`, index+1)
	fmt.Fprintf(&sb,
		`<p:grpSpPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/><a:chOff x="0" y="0"/><a:chExt cx="%d" cy="%d"/></a:xfrm></p:grpSpPr>`,
		offX, offY, extX, extY, extX, extY)

	// Backdrop rectangle.
	fmt.Fprintf(&sb,
		`<p:sp><p:nvSpPr><p:cNvPr id="3" name="backdrop"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
			`<p:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`+
			`<a:solidFill><a:srgbClr val="%02X%02X%02X"/></a:solidFill><a:ln><a:noFill/></a:ln></p:spPr>`+
			`<p:txBody><a:bodyPr/><a:p/></p:txBody></p:sp>`,
		extX, extY, backdrop.R, backdrop.G, backdrop.B)

	// Stencil freeform: every contour is a subpath, so holes cut out.
	sb.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="4" name="stencil"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr>`)
	fmt.Fprintf(&sb, `<a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, extX, extY)
	sb.WriteString(`<a:custGeom><a:avLst/><a:gdLst/><a:ahLst/><a:cxnLst/>`)
	fmt.Fprintf(&sb, `<a:rect l="0" t="0" r="%d" b="%d"/><a:pathLst>`, extX, extY)
	fmt.Fprintf(&sb, `<a:path w="%d" h="%d">`, extX, extY)
	for _, c := range set.Contours {
		if len(c.Points) < 3 {
			continue
		}
		p0 := cell.Transform.Apply(c.Points[0])
		fmt.Fprintf(&sb, `<a:moveTo><a:pt x="%d" y="%d"/></a:moveTo>`, pxToEMU(p0.X), pxToEMU(p0.Y))
		for _, pt := range c.Points[1:] {
			q := cell.Transform.Apply(pt)
			fmt.Fprintf(&sb, `<a:lnTo><a:pt x="%d" y="%d"/></a:lnTo>`, pxToEMU(q.X), pxToEMU(q.Y))
		}
		sb.WriteString(`<a:close/>`)
	}
	sb.WriteString(`</a:path></a:pathLst></a:custGeom>`)
	sb.WriteString(`<a:solidFill><a:srgbClr val="FFFFFF"/></a:solidFill><a:ln><a:noFill/></a:ln></p:spPr>`)
	sb.WriteString(`<p:txBody><a:bodyPr/><a:p/></p:txBody></p:sp>`)

	sb.WriteString(`</p:grpSp></p:spTree></p:cSld></p:sld>`)
	return sb.String()
}

func mmToEMU(mm float64) int64 {
	return int64(math.Round(mm / 25.4 * emuPerInch))
}

// Minimal master, layout, and theme parts; slides carry their own
// geometry so these only need to satisfy the package structure.
const slideMasterXML = `<p:sldMaster xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree></p:cSld><p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/><p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst></p:sldMaster>`

const slideLayoutXML = `<p:sldLayout xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" type="blank"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree></p:cSld><p:clrMapOvr><a:overrideClrMapping bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/></p:clrMapOvr></p:sldLayout>`

const themeXML = `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="vyt"><a:themeElements><a:clrScheme name="vyt"><a:dk1><a:srgbClr val="000000"/></a:dk1><a:lt1><a:srgbClr val="FFFFFF"/></a:lt1><a:dk2><a:srgbClr val="444444"/></a:dk2><a:lt2><a:srgbClr val="EEEEEE"/></a:lt2><a:accent1><a:srgbClr val="4F81BD"/></a:accent1><a:accent2><a:srgbClr val="C0504D"/></a:accent2><a:accent3><a:srgbClr val="9BBB59"/></a:accent3><a:accent4><a:srgbClr val="8064A2"/></a:accent4><a:accent5><a:srgbClr val="4BACC6"/></a:accent5><a:accent6><a:srgbClr val="F79646"/></a:accent6><a:hlink><a:srgbClr val="0000FF"/></a:hlink><a:folHlink><a:srgbClr val="800080"/></a:folHlink></a:clrScheme><a:fontScheme name="vyt"><a:majorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont><a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont></a:fontScheme><a:fmtScheme name="vyt"><a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst><a:lnStyleLst><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst><a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst><a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst></a:fmtScheme></a:themeElements></a:theme>`
