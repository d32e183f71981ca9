package services

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// encodeDropOff parses a GeoJSON Point (WGS84 lon/lat) and returns it as WKB.
func encodeDropOff(raw json.RawMessage) ([]byte, error) {
	var g geom.T
	if err := geojson.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("location is not valid GeoJSON: %w", err)
	}
	pt, ok := g.(*geom.Point)
	if !ok {
		return nil, errors.New("location must be a GeoJSON Point")
	}
	if pt.Empty() {
		return nil, errors.New("location has no coordinates")
	}
	lon, lat := pt.X(), pt.Y()
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return nil, errors.New("location coordinates out of range")
	}
	return wkb.Marshal(pt, binary.LittleEndian)
}

// decodeDropOff turns stored WKB back into GeoJSON.
func decodeDropOff(data []byte) (json.RawMessage, error) {
	if len(data) == 0 {
		return nil, nil
	}
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	out, err := geojson.Marshal(g)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(out), nil
}
