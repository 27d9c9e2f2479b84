package services

import (
	"context"
	"log"
	"time"

	"constellation-backend/models"
	"constellation-backend/utils"

	h3 "github.com/uber/h3-go/v4"
)

// H3Resolution is the fixed hex resolution of the heat map (~5 km cells).
const H3Resolution = 7

// Geocoder resolves a free-text address to coordinates. Implementations
// return (nil, nil) when the address has no match.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*utils.GeoPoint, error)
}

// LocationService runs the location-update protocol for user writes:
// geocode the new address, derive its H3 cell, and keep the heat-map
// counters consistent with the move.
type LocationService struct {
	Geocoder Geocoder
	HeatMap  *HeatMapService
}

func NewLocationService(geocoder Geocoder, heatMap *HeatMapService) *LocationService {
	return &LocationService{Geocoder: geocoder, HeatMap: heatMap}
}

// CellForCoords returns the resolution-7 H3 cell index for a coordinate pair.
func CellForCoords(lat, lng float64) (string, error) {
	cell, err := h3.LatLngToCell(h3.NewLatLng(lat, lng), H3Resolution)
	if err != nil {
		return "", err
	}
	return cell.String(), nil
}

// ApplyAddressChange mutates user in place according to the new address and
// adjusts the heat-map buckets. user carries the persisted (previous) state
// on entry; the caller saves it afterwards. Callers invoke this exactly
// once per logical write.
//
// Geocoding failure is swallowed: the address still updates, but the
// previously resolved cell, coordinates and timestamp stay untouched.
func (s *LocationService) ApplyAddressChange(ctx context.Context, user *models.User, newAddress string) {
	log.Printf("[Location] Processing location for user %s. New address: %q, old address: %q",
		user.ID, newAddress, user.Address)

	// Address removed: release the old cell and clear geocoded state.
	if newAddress == "" {
		if user.H3Index != "" {
			log.Printf("[Location] Address removed. Decrementing old cell %s", user.H3Index)
			if err := s.HeatMap.Decrement(user.H3Index); err != nil {
				log.Printf("[Location] Failed to decrement cell %s: %v", user.H3Index, err)
			}
		}
		now := time.Now()
		user.Address = ""
		user.Latitude = nil
		user.Longitude = nil
		user.H3Index = ""
		user.GeocodedAt = &now
		return
	}

	// Unchanged address with a resolved cell: skip the external call.
	if newAddress == user.Address && user.H3Index != "" {
		log.Printf("[Location] No address change and cell already resolved. Skipping geocoding.")
		return
	}

	geo, err := s.Geocoder.Geocode(ctx, newAddress)
	if err != nil || geo == nil {
		log.Printf("[Location] Geocoding failed for address %q (err: %v). Keeping previous location state.", newAddress, err)
		user.Address = newAddress
		return
	}

	newCell, err := CellForCoords(geo.Latitude, geo.Longitude)
	if err != nil {
		log.Printf("[Location] H3 cell derivation failed for %q: %v. Keeping previous location state.", newAddress, err)
		user.Address = newAddress
		return
	}

	if newCell != user.H3Index {
		log.Printf("[Location] New cell: %s, old cell: %s", newCell, user.H3Index)
		if user.H3Index != "" {
			if err := s.HeatMap.Decrement(user.H3Index); err != nil {
				log.Printf("[Location] Failed to decrement cell %s: %v", user.H3Index, err)
			}
		}
		if err := s.HeatMap.Increment(newCell); err != nil {
			log.Printf("[Location] Failed to increment cell %s: %v", newCell, err)
		}
		user.H3Index = newCell
	}

	// Same cell still refreshes coordinates and the geocode timestamp.
	now := time.Now()
	user.Address = newAddress
	user.Latitude = &geo.Latitude
	user.Longitude = &geo.Longitude
	user.GeocodedAt = &now
}
