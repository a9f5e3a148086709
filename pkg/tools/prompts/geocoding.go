// Package prompts provides prompt templates for use with the MCP server.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/NERVsystems/kmapmcp/pkg/tools"
)

// Prompt names.
const (
	PromptUsage             = "kakao_map_usage"
	PromptCategoryCodes     = "kakao_category_codes"
	PromptCoordinateSystems = "kakao_coordinate_systems"
)

// RegisterGeocodingPrompts registers all Kakao map prompts with the MCP server
func RegisterGeocodingPrompts(s *server.MCPServer) {
	s.AddPrompt(mcp.NewPrompt(PromptUsage,
		mcp.WithPromptDescription("Instructions for using the Korean map tools"),
	), UsagePromptHandler)

	s.AddPrompt(mcp.NewPrompt(PromptCategoryCodes,
		mcp.WithPromptDescription("Category group codes accepted by korean_category_search"),
	), CategoryCodesHandler)

	s.AddPrompt(mcp.NewPrompt(PromptCoordinateSystems,
		mcp.WithPromptDescription("Coordinate systems accepted by korean_coordinate_transformer"),
	), CoordinateSystemsHandler)
}

// UsagePromptHandler returns the main prompt for the map tools
func UsagePromptHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	usage := `You have access to tools backed by the Kakao Local API for places in Korea.
When using these tools:

1. korean_address_search takes a full Korean address, e.g. "서울 강남구 삼성동 159". Prefer
   the road name or lot number form over landmark names.
2. Landmarks and businesses ("코엑스", "카카오프렌즈") belong in korean_keyword_search.
3. korean_category_search needs a category group code (see kakao_category_codes) and a
   center coordinate. The radius is in meters, at most 20000.
4. Coordinates are WGS84 decimal degrees unless you are using korean_coordinate_transformer.
   Korea lies roughly between latitude 33-39 and longitude 124-132; swapped values are a
   common mistake.
5. A tool that finds nothing says so in plain words. Fields the service did not return are
   shown as N/A.

ERROR HANDLING GUIDELINES:
1. "Invalid input" means no request was made. Fix the named field and call again.
2. "Error calling the API" means the map service failed. Follow the guidance in the message.
3. "Error parsing server response" includes the raw response; report it rather than retrying.`

	return mcp.NewGetPromptResult(
		"Korean Map Tool Usage Guidelines",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(usage),
			),
		},
	), nil
}

// CategoryCodesHandler lists the category group codes
func CategoryCodesHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	var b strings.Builder
	b.WriteString("CATEGORY GROUP CODES FOR korean_category_search:\n\n")
	for _, g := range tools.CategoryGroups {
		fmt.Fprintf(&b, "%s - %s\n", g.Code, g.Label)
	}

	return mcp.NewGetPromptResult(
		"Kakao Category Group Codes",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(b.String()),
			),
		},
	), nil
}

// CoordinateSystemsHandler lists the supported coordinate systems
func CoordinateSystemsHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	text := fmt.Sprintf(`COORDINATE SYSTEMS FOR korean_coordinate_transformer:

%s

WGS84 is plain latitude/longitude. WTM, TM, KTM and UTM are projected systems in meters,
so their "latitude" and "longitude" arguments are the y and x values of the projection.
WCONGNAMUL and CONGNAMUL are the systems used by Kakao Map URLs.`, strings.Join(tools.CoordinateSystems, ", "))

	return mcp.NewGetPromptResult(
		"Kakao Coordinate Systems",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(text),
			),
		},
	), nil
}
