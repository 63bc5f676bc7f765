package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"

	"github.com/jurandifr/AcheiPet/schema"
)

var (
	ErrNoGeoInfoFound = fmt.Errorf("no geo information found")
)

const (
	defaultNominatimEndpoint = "https://nominatim.openstreetmap.org"
	resolverTimeout          = 5 * time.Second
	userAgent                = "AcheiUmPet/1.0"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "geo")
}

// LocationResolver resolves coordinates into address fragments.
type LocationResolver interface {
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (schema.AddressInfo, error)
}

// NominatimResolver queries an OSM Nominatim endpoint.
type NominatimResolver struct {
	client   *http.Client
	endpoint string
}

func NewNominatimResolver(client *http.Client, endpoint string) *NominatimResolver {
	if client == nil {
		client = &http.Client{Timeout: resolverTimeout}
	}
	if endpoint == "" {
		endpoint = defaultNominatimEndpoint
	}
	return &NominatimResolver{
		client:   client,
		endpoint: endpoint,
	}
}

type nominatimAddress struct {
	Road          string `json:"road"`
	Street        string `json:"street"`
	Pedestrian    string `json:"pedestrian"`
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	Residential   string `json:"residential"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	Municipality  string `json:"municipality"`
	State         string `json:"state"`
	Region        string `json:"region"`
}

type nominatimResponse struct {
	Address nominatimAddress `json:"address"`
}

func (r *NominatimResolver) ReverseGeocode(ctx context.Context, latitude, longitude float64) (schema.AddressInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, resolverTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("format", "json")
	query.Set("lat", fmt.Sprintf("%f", latitude))
	query.Set("lon", fmt.Sprintf("%f", longitude))
	query.Set("zoom", "18")
	query.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"/reverse?"+query.Encode(), nil)
	if err != nil {
		return schema.AddressInfo{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return schema.AddressInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return schema.AddressInfo{}, fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return schema.AddressInfo{}, err
	}

	a := body.Address
	info := schema.AddressInfo{
		Rua:    firstNonEmpty(a.Road, a.Street, a.Pedestrian),
		Bairro: firstNonEmpty(a.Suburb, a.Neighbourhood, a.Residential),
		Cidade: firstNonEmpty(a.City, a.Town, a.Village, a.Municipality),
		Estado: firstNonEmpty(a.State, a.Region),
	}

	if info == (schema.AddressInfo{}) {
		return info, ErrNoGeoInfoFound
	}
	return info, nil
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// MapsResolver resolves through the Google Maps Geocoding API. It is an
// optional alternative to Nominatim, enabled when an API key is configured.
type MapsResolver struct {
	client *maps.Client
}

func NewMapsResolver(client *maps.Client) *MapsResolver {
	return &MapsResolver{
		client: client,
	}
}

func (r *MapsResolver) ReverseGeocode(ctx context.Context, latitude, longitude float64) (schema.AddressInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, resolverTimeout)
	defer cancel()

	geos, err := r.client.Geocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{
			Lat: latitude,
			Lng: longitude,
		},
	})
	if nil != err {
		return schema.AddressInfo{}, err
	}

	if len(geos) == 0 {
		return schema.AddressInfo{}, ErrNoGeoInfoFound
	}

	var info schema.AddressInfo
	for _, a := range geos[0].AddressComponents {
		if len(a.Types) == 0 {
			continue
		}
		switch a.Types[0] {
		case "route":
			info.Rua = a.LongName
		case "sublocality", "sublocality_level_1", "neighborhood":
			info.Bairro = a.LongName
		case "locality", "administrative_area_level_2":
			if info.Cidade == "" {
				info.Cidade = a.LongName
			}
		case "administrative_area_level_1":
			info.Estado = a.LongName
		}
	}

	if info == (schema.AddressInfo{}) {
		return info, ErrNoGeoInfoFound
	}
	return info, nil
}

// MultipleLocationResolver tries each resolver in order until one succeeds.
type MultipleLocationResolver struct {
	resolvers []LocationResolver
}

func NewMultipleLocationResolver(resolvers ...LocationResolver) *MultipleLocationResolver {
	return &MultipleLocationResolver{
		resolvers: resolvers,
	}
}

func (r *MultipleLocationResolver) ReverseGeocode(ctx context.Context, latitude, longitude float64) (schema.AddressInfo, error) {
	var lastErr error = ErrNoGeoInfoFound
	for _, resolver := range r.resolvers {
		info, err := resolver.ReverseGeocode(ctx, latitude, longitude)
		if err != nil {
			lastErr = err
			continue
		}
		return info, nil
	}

	return schema.AddressInfo{}, lastErr
}

// BestEffortResolver never returns an error. Address metadata is cosmetic;
// any failure is logged and yields empty fragments.
type BestEffortResolver struct {
	resolver LocationResolver
}

func NewBestEffortResolver(resolver LocationResolver) *BestEffortResolver {
	return &BestEffortResolver{
		resolver: resolver,
	}
}

func (r *BestEffortResolver) ReverseGeocode(ctx context.Context, latitude, longitude float64) (schema.AddressInfo, error) {
	info, err := r.resolver.ReverseGeocode(ctx, latitude, longitude)
	if err != nil {
		log.WithError(err).Warn("reverse geocoding degraded to empty address")
		return schema.AddressInfo{}, nil
	}
	return info, nil
}
