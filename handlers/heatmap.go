// handlers/heatmap.go
package handlers

import (
	"log"

	"constellation-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	h3 "github.com/uber/h3-go/v4"
)

func SetupHeatMapRoutes(app *fiber.App, heatMapService *services.HeatMapService) {
	// 🔓 Public (gateway auth only): the heat map is aggregate data
	app.Get("/heat-maps/geojson", func(c *fiber.Ctx) error {
		cells, err := heatMapService.ListCells()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load heat map", "cause": err.Error(),
			})
		}

		fc := geojson.NewFeatureCollection()
		for _, cell := range cells {
			index := h3.Cell(h3.IndexFromString(cell.H3Index))
			boundary, err := index.Boundary()
			if err != nil || len(boundary) == 0 {
				log.Printf("[HeatMap] Skipping cell with bad index %q: %v", cell.H3Index, err)
				continue
			}

			// H3 gives lat/lng pairs; GeoJSON wants lng/lat and a closed ring
			ring := make(orb.Ring, 0, len(boundary)+1)
			for _, vertex := range boundary {
				ring = append(ring, orb.Point{vertex.Lng, vertex.Lat})
			}
			ring = append(ring, ring[0])

			feature := geojson.NewFeature(orb.Polygon{ring})
			feature.Properties = geojson.Properties{
				"count":   cell.Count,
				"h3Index": cell.H3Index,
			}
			fc.Append(feature)
		}

		return c.JSON(fc)
	})
}
