package domain

// RenderAction - что делать с геометрией перед отрисовкой
type RenderAction string

const (
	ActionRenderNormal         RenderAction = "render_normal"
	ActionSimplifyCoordinates  RenderAction = "simplify_coordinates"
	ActionSimplifyMultipolygon RenderAction = "simplify_multipolygon"
	ActionUseFallbackBounds    RenderAction = "use_fallback_bounds"
)

// ComplexityVerdict - результат диагностики геометрии
type ComplexityVerdict struct {
	Issues     []string     `json:"issues"`
	Renderable bool         `json:"renderable"`
	Action     RenderAction `json:"action"`
}
