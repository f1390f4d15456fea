package chart

import "mini-livechart/pkg/model"

// Realtime builds the config for a scrolling live line chart. color is any
// rgba() or #hex string; the fill uses the same hue at low opacity when it
// is given as rgba().
func Realtime(title, label, color string, data model.Samples) *Config {
	if color == "" {
		color = RGBA(75, 192, 192, 1)
	}
	return &Config{
		Type: Line,
		Data: Data{
			Datasets: []Dataset{{
				Label:           label,
				Data:            data,
				BorderColor:     color,
				BackgroundColor: withAlpha(color, 0.1),
				Tension:         0.4,
				Fill:            true,
				PointRadius:     Radius{Fixed: 3},
			}},
		},
		Options: Options{
			Responsive: true,
			Animation:  &Animation{Duration: 0},
			Plugins: Plugins{
				Title:  Title{Display: true, Text: title},
				Legend: Legend{Display: true, Position: "top"},
			},
			Scales: map[string]Scale{
				"x": {Type: "linear", Title: Title{Display: true, Text: "time"}},
				"y": {BeginAtZero: true, Max: Float(100), Title: Title{Display: true, Text: "value"}},
			},
		},
	}
}

func withAlpha(color string, a float64) string {
	c, err := ParseColor(color)
	if err != nil {
		return color
	}
	return RGBA(c.R, c.G, c.B, a)
}
