package viewer

// EnvironmentURL is the remote HDR used for image-based lighting.
const EnvironmentURL = "https://modelviewer.dev/shared-assets/environments/neutral.hdr"

// ModelPath is the path the page requests the model from.
const ModelPath = "/rotor.glb"

// Color space, tone mapping and shadow map names as used by the page.
const (
	ColorSpaceSRGB         = "srgb"
	ToneMappingACESFilmic  = "aces_filmic"
	ShadowMapPCFSoft       = "pcf_soft"
	MappingEquirectReflect = "equirectangular_reflection"
)

// RendererSettings holds the fixed configuration of the rendering surface.
type RendererSettings struct {
	Antialias           bool    `json:"antialias"`
	Alpha               bool    `json:"alpha"`
	ClearColor          uint32  `json:"clear_color"`
	ClearAlpha          float64 `json:"clear_alpha"`
	OutputColorSpace    string  `json:"output_color_space"`
	ToneMapping         string  `json:"tone_mapping"`
	ToneMappingExposure float64 `json:"tone_mapping_exposure"`
	ShadowMapEnabled    bool    `json:"shadow_map_enabled"`
	ShadowMapType       string  `json:"shadow_map_type"`
}

// DefaultRendererSettings returns the settings the page renders with.
func DefaultRendererSettings() RendererSettings {
	return RendererSettings{
		Antialias:           true,
		Alpha:               false,
		ClearColor:          0x000000,
		ClearAlpha:          1,
		OutputColorSpace:    ColorSpaceSRGB,
		ToneMapping:         ToneMappingACESFilmic,
		ToneMappingExposure: 1.0,
		ShadowMapEnabled:    true,
		ShadowMapType:       ShadowMapPCFSoft,
	}
}
