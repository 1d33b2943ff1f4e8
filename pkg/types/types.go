package types

import "encoding/json"

const UnknownVendor string = "Unknown"

// GeoBox is an axis aligned rectangle in decimal degrees. TopLat is never
// below BottomLat. TopLon is expected to be east of BottomLon, but boxes that
// cross the anti-meridian are passed through as is.
type GeoBox struct {
	TopLat    float64 `json:"topLat"`
	TopLon    float64 `json:"topLon"`
	BottomLat float64 `json:"bottomLat"`
	BottomLon float64 `json:"bottomLon"`
}

// WorldBox covers every known sighting and is used for the initial view.
var WorldBox = GeoBox{TopLat: 90, TopLon: 180, BottomLat: -90, BottomLon: -180}

func (b GeoBox) Contains(lat, lon float64) bool {
	return lat <= b.TopLat && lat >= b.BottomLat && lon <= b.TopLon && lon >= b.BottomLon
}

type LocationRecord struct {
	Identity string  `json:"mac"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

type SummaryEntry struct {
	Relationship string          `json:"relationship"`
	Labels       []string        `json:"node_labels"`
	Properties   json.RawMessage `json:"properties"`
}

type VendorAggregate struct {
	Vendor string `json:"vendor"`
	Count  int    `json:"count"`
}

type ExportBundle struct {
	Vendors   []VendorAggregate `json:"vendors"`
	SSIDs     []string          `json:"all_ssids"`
	Hostnames []string          `json:"all_hostnames"`
	MACs      []string          `json:"all_macs"`
}

func (eb *ExportBundle) UnmarshalJSON(data []byte) error {
	type bundle ExportBundle

	b := bundle{}
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}

	*eb = ExportBundle(b)

	if eb.Vendors == nil {
		eb.Vendors = []VendorAggregate{}
	}
	if eb.SSIDs == nil {
		eb.SSIDs = []string{}
	}
	if eb.Hostnames == nil {
		eb.Hostnames = []string{}
	}
	if eb.MACs == nil {
		eb.MACs = []string{}
	}

	return nil
}
