// Package xmpns holds the URIs of the standard XMP schemas.
//
// The engine registers every namespace listed here with its customary
// prefix during initialization, so callers can use these constants with
// any property operation without calling RegisterNamespace first.
package xmpns

// Adobe schemas.
const (
	// XMP is the XMP basic schema.
	XMP = "http://ns.adobe.com/xap/1.0/"
	// XMPRights is the XMP rights management schema.
	XMPRights = "http://ns.adobe.com/xap/1.0/rights/"
	// XMPMM is the XMP media management schema.
	XMPMM = "http://ns.adobe.com/xap/1.0/mm/"
	// XMPBJ is the basic job ticket schema.
	XMPBJ = "http://ns.adobe.com/xap/1.0/bj/"
	// PDF is the Adobe PDF schema.
	PDF       = "http://ns.adobe.com/pdf/1.3/"
	Photoshop = "http://ns.adobe.com/photoshop/1.0/"
	EXIF      = "http://ns.adobe.com/exif/1.0/"
	TIFF      = "http://ns.adobe.com/tiff/1.0/"
)

// Namespaces of qualifiers and structure fields.
const (
	// IdentifierQual qualifies items of xmp:Identifier.
	IdentifierQual = "http://ns.adobe.com/xmp/Identifier/qual/1.0/"
	Dimensions     = "http://ns.adobe.com/xap/1.0/sType/Dimensions#"
	// Image holds the fields of a thumbnail.
	Image         = "http://ns.adobe.com/xap/1.0/g/img/"
	ResourceEvent = "http://ns.adobe.com/xap/1.0/sType/ResourceEvent#"
	ResourceRef   = "http://ns.adobe.com/xap/1.0/sType/ResourceRef#"
	STVersion     = "http://ns.adobe.com/xap/1.0/sType/Version#"
	STJob         = "http://ns.adobe.com/xap/1.0/sType/Job#"
)

// Schemas defined outside Adobe.
const (
	// DC is Dublin Core.
	DC       = "http://purl.org/dc/elements/1.1/"
	IPTCCore = "http://iptc.org/std/Iptc4xmpCore/1.0/xmlns/"
	IPTCExt  = "http://iptc.org/std/Iptc4xmpExt/2008-02-29/"
	RDF      = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	// XML is the namespace of xml:lang.
	XML = "http://www.w3.org/XML/1998/namespace"
)

// Standard lists every constant of this package with its customary prefix,
// in registration order.
var Standard = [...]struct {
	URI    string
	Prefix string
}{
	{XML, "xml"},
	{RDF, "rdf"},
	{DC, "dc"},
	{XMP, "xmp"},
	{XMPRights, "xmpRights"},
	{XMPMM, "xmpMM"},
	{XMPBJ, "xmpBJ"},
	{PDF, "pdf"},
	{Photoshop, "photoshop"},
	{EXIF, "exif"},
	{TIFF, "tiff"},
	{IdentifierQual, "xmpidq"},
	{Dimensions, "stDim"},
	{Image, "xmpGImg"},
	{ResourceEvent, "stEvt"},
	{ResourceRef, "stRef"},
	{STVersion, "stVer"},
	{STJob, "stJob"},
	{IPTCCore, "Iptc4xmpCore"},
	{IPTCExt, "Iptc4xmpExt"},
}
