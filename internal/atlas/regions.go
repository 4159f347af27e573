// ABOUTME: Built-in named map regions as rectangular bounding boxes
// ABOUTME: Boxes are coarse on purpose; region queries are approximate
package atlas

// DefaultRegions covers the major surface provinces. The boxes overlap
// at the borders; a location near a boundary may answer for more than
// one region.
var DefaultRegions = []Region{
	{Name: "central hyrule", Layer: LayerSurface, XMin: -1800, XMax: 1500, ZMin: -1800, ZMax: 1500},
	{Name: "hebra", Layer: LayerSurface, XMin: -5000, XMax: -1800, ZMin: -4000, ZMax: -1200},
	{Name: "eldin", Layer: LayerSurface, XMin: 1400, XMax: 4800, ZMin: -3900, ZMax: 400},
	{Name: "akkala", Layer: LayerSurface, XMin: 2900, XMax: 4900, ZMin: -3600, ZMax: -1400},
	{Name: "lanayru", Layer: LayerSurface, XMin: 1500, XMax: 4900, ZMin: -1200, ZMax: 1200},
	{Name: "necluda", Layer: LayerSurface, XMin: 1200, XMax: 4800, ZMin: 1200, ZMax: 3900},
	{Name: "faron", Layer: LayerSurface, XMin: -400, XMax: 2200, ZMin: 2200, ZMax: 4200},
	{Name: "gerudo", Layer: LayerSurface, XMin: -5000, XMax: -1500, ZMin: 1200, ZMax: 4100},
	{Name: "great hyrule forest", Layer: LayerSurface, XMin: -600, XMax: 1100, ZMin: -2800, ZMax: -1200},
}
