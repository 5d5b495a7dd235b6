// Package export renders a solved or spoiled Ædificium for human
// consumption: ExportJSON/SaveJSONToFile emit the judge's Map JSON
// format through aedificium.Aedificium's own MarshalJSON (which builds
// an aedificium.MapDoc), and
// ExportSVG/SaveSVGToFile draw a ring layout of rooms colored by their
// 2-bit label.
package export
