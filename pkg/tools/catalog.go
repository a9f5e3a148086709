package tools

import (
	"github.com/NERVsystems/kmapmcp/pkg/kakao"
)

// Tool names.
const (
	ToolAddressSearch       = "korean_address_search"
	ToolCategorySearch      = "korean_category_search"
	ToolKeywordSearch       = "korean_keyword_search"
	ToolCoordToAddress      = "korean_coord_to_address"
	ToolCoordToRegionCode   = "korean_coord_to_regioncode"
	ToolCoordinateTransform = "korean_coordinate_transformer"
)

const (
	// DefaultRadius is the category search radius in meters when none is given
	DefaultRadius = 1000

	// MaxRadius is the largest radius the Kakao Local API accepts
	MaxRadius = 20000
)

// CategoryGroup is a Kakao place category group.
type CategoryGroup struct {
	Code  string
	Label string
}

// CategoryGroups lists the category group codes accepted by category search.
var CategoryGroups = []CategoryGroup{
	{"MT1", "Large supermarket"},
	{"CS2", "Convenience store"},
	{"PS3", "Daycare / kindergarten"},
	{"SC4", "School"},
	{"AC5", "Private academy"},
	{"PK6", "Parking lot"},
	{"OL7", "Gas / charging station"},
	{"SW8", "Subway station"},
	{"BK9", "Bank"},
	{"CT1", "Cultural facility"},
	{"AG2", "Real estate agency"},
	{"PO3", "Public institution"},
	{"AT4", "Tourist attraction"},
	{"AD5", "Accommodation"},
	{"FD6", "Restaurant"},
	{"CE7", "Cafe"},
	{"HP8", "Hospital"},
	{"PM9", "Pharmacy"},
}

// CoordinateSystems lists the systems accepted by coordinate transformation.
var CoordinateSystems = []string{
	"WGS84", "WCONGNAMUL", "CONGNAMUL", "WTM", "TM", "KTM", "UTM", "BESSEL", "WKTM", "WUTM",
}

// CatalogOptions tunes the tool catalog.
type CatalogOptions struct {
	// DefaultRadius is the category search radius when the agent gives none.
	DefaultRadius int
}

func categoryCodes() []string {
	codes := make([]string, len(CategoryGroups))
	for i, g := range CategoryGroups {
		codes[i] = g.Code
	}
	return codes
}

func latitudeField(required bool, desc string) Field {
	return Field{Name: "latitude", Type: TypeNumber, Required: required, Description: desc, Min: bound(-90), Max: bound(90)}
}

func longitudeField(required bool, desc string) Field {
	return Field{Name: "longitude", Type: TypeNumber, Required: required, Description: desc, Min: bound(-180), Max: bound(180)}
}

func radiusField(desc string, def any) Field {
	return Field{Name: "radius", Type: TypeInteger, Description: desc, Default: def, Min: bound(0), Max: bound(MaxRadius)}
}

var coordParams = []ParamMapping{Map("latitude", "y"), Map("longitude", "x")}

var placeShape = Shape{
	Limit:  3,
	Format: "Place: %s, Address: %s",
	Fields: []string{"place_name", "address_name"},
}

// Definitions returns the six Kakao map tools.
func Definitions(opts CatalogOptions) []Definition {
	radius := opts.DefaultRadius
	if radius <= 0 {
		radius = DefaultRadius
	}

	categoryShape := placeShape
	categoryShape.Empty = "No results found for the given category and location."
	keywordShape := placeShape
	keywordShape.Empty = "No results found for the given keyword."

	return []Definition{
		{
			Spec: ToolSpec{
				Name:        ToolAddressSearch,
				Description: "Useful for when you need to find the coordinates (latitude and longitude) of a Korean address.",
				Fields: []Field{
					{Name: "query", Type: TypeString, Required: true, MinLength: 1, Description: "The Korean address to search for coordinates."},
				},
			},
			Endpoint: kakao.EndpointSearchAddress,
			Params:   []ParamMapping{Map("query", "query")},
			Shape: Shape{
				Limit:  1,
				Format: "Address: %s, Latitude: %s, Longitude: %s",
				Fields: []string{"address_name", "y", "x"},
				Empty:  "No results found for the given address.",
			},
		},
		{
			Spec: ToolSpec{
				Name:        ToolCategorySearch,
				Description: "Useful for finding places of a specific category (like pharmacy, cafe) around a given coordinate. Category codes are required (e.g., PM9 for pharmacy, CE7 for cafe).",
				Fields: []Field{
					{Name: "category_group_code", Type: TypeString, Required: true, Enum: categoryCodes(), Description: "The category group code to search for (e.g., 'PM9' for pharmacy, 'CE7' for cafe)."},
					latitudeField(true, "The latitude for the center of the search radius."),
					longitudeField(true, "The longitude for the center of the search radius."),
					radiusField("The search radius in meters (0-20000). Default is 1000m.", radius),
				},
			},
			Endpoint: kakao.EndpointSearchCategory,
			Params: []ParamMapping{
				Map("category_group_code", "category_group_code"),
				Map("latitude", "y"),
				Map("longitude", "x"),
				Map("radius", "radius"),
			},
			Shape: categoryShape,
		},
		{
			Spec: ToolSpec{
				Name:        ToolKeywordSearch,
				Description: "Useful for when you need to find places in Korea based on a keyword (e.g., 'Kakao Friends', '맛집'). You can optionally provide coordinates and a radius to search a specific area.",
				Fields: []Field{
					{Name: "query", Type: TypeString, Required: true, MinLength: 1, Description: "The keyword to search for, such as a place name or category."},
					latitudeField(false, "The latitude for the center of the search radius."),
					longitudeField(false, "The longitude for the center of the search radius."),
					radiusField("The search radius in meters (0-20000).", nil),
				},
			},
			Endpoint: kakao.EndpointSearchKeyword,
			Params: []ParamMapping{
				Map("query", "query"),
				Map("latitude", "y"),
				Map("longitude", "x"),
				Map("radius", "radius"),
			},
			Shape: keywordShape,
		},
		{
			Spec: ToolSpec{
				Name:        ToolCoordToAddress,
				Description: "Useful for converting geographic coordinates (latitude, longitude) into a Korean street address or lot number address.",
				Fields: []Field{
					latitudeField(true, "The latitude coordinate."),
					longitudeField(true, "The longitude coordinate."),
				},
			},
			Endpoint: kakao.EndpointCoord2Address,
			Params:   coordParams,
			Shape: Shape{
				Limit:  1,
				Format: "Road Address: %s, Lot Address: %s",
				Fields: []string{"road_address.address_name", "address.address_name"},
				Empty:  "Could not find an address for the given coordinates.",
			},
		},
		{
			Spec: ToolSpec{
				Name:        ToolCoordToRegionCode,
				Description: "Useful for finding the administrative region information (행정구역) for a given geographic coordinate (latitude, longitude).",
				Fields: []Field{
					latitudeField(true, "The latitude coordinate."),
					longitudeField(true, "The longitude coordinate."),
				},
			},
			Endpoint: kakao.EndpointCoord2RegionCode,
			Params:   coordParams,
			Shape: Shape{
				Limit:  1,
				Format: "Type: %s, Name: %s",
				Fields: []string{"region_type", "address_name"},
				Empty:  "Could not find region information for the given coordinates.",
			},
		},
		{
			Spec: ToolSpec{
				Name:        ToolCoordinateTransform,
				Description: "Useful for converting coordinates between different systems like WGS84 and WTM.",
				Fields: []Field{
					{Name: "longitude", Type: TypeNumber, Required: true, Description: "The x-coordinate to transform."},
					{Name: "latitude", Type: TypeNumber, Required: true, Description: "The y-coordinate to transform."},
					{Name: "input_coord", Type: TypeString, Required: true, Enum: CoordinateSystems, Description: "The input coordinate system. e.g., WTM, WGS84."},
					{Name: "output_coord", Type: TypeString, Required: true, Enum: CoordinateSystems, Description: "The target coordinate system. e.g., WGS84, WTM."},
				},
			},
			Endpoint: kakao.EndpointTransCoord,
			Params: []ParamMapping{
				Map("latitude", "y"),
				Map("longitude", "x"),
				Map("input_coord", "input_coord"),
				Map("output_coord", "output_coord"),
			},
			Shape: Shape{
				Limit:  1,
				Format: "Converted Coordinates -> Latitude: %s, Longitude: %s",
				Fields: []string{"y", "x"},
				Empty:  "Could not transform the coordinates.",
			},
		},
	}
}
