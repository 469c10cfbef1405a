package dashboard

var defaultWidgetDescriptors = []WidgetDescriptor{
	{
		Code: "mine.widget.equipment",
		Name: "Equipment Status",
		NameLocalized: map[string]string{
			"es": "Estado de equipos",
		},
		Category:    CategoryStatus,
		Description: "Status of mining machinery and equipment",
		DescriptionLocalized: map[string]string{
			"es": "Estado de la maquinaria y equipos de mina",
		},
		DefaultVisible: true,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"zone": map[string]any{"type": "string"},
				"include_maintenance": map[string]any{
					"type":    "boolean",
					"default": true,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code: "mine.widget.energy",
		Name: "Energy Consumption",
		NameLocalized: map[string]string{
			"es": "Consumo de energía",
		},
		Category:    CategoryChart,
		Description: "Daily electricity and diesel consumption with costs",
		DescriptionLocalized: map[string]string{
			"es": "Consumo diario de electricidad y diésel con costos",
		},
		DefaultVisible: true,
		Schema:         energyChartSchema(),
	},
	{
		Code: "mine.widget.gold_production",
		Name: "Gold Production",
		NameLocalized: map[string]string{
			"es": "Producción de oro",
		},
		Category:    CategoryMetrics,
		Description: "Daily gold production with weight, purity, and value",
		DescriptionLocalized: map[string]string{
			"es": "Producción diaria de oro con peso, pureza y valor",
		},
		DefaultVisible: true,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"unit": map[string]any{
					"type":    "string",
					"enum":    []string{"g", "oz", "kg"},
					"default": "g",
				},
				"show_value": map[string]any{
					"type":    "boolean",
					"default": true,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code: "mine.widget.production",
		Name: "Production Overview",
		NameLocalized: map[string]string{
			"es": "Resumen de producción",
		},
		Category:    CategoryMetrics,
		Description: "Overall production metrics and efficiency",
		DescriptionLocalized: map[string]string{
			"es": "Métricas generales de producción y eficiencia",
		},
		DefaultVisible: true,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"target_tonnes": map[string]any{
					"type":    "number",
					"minimum": 0,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code: "mine.widget.safety",
		Name: "Safety Status",
		NameLocalized: map[string]string{
			"es": "Estado de seguridad",
		},
		Category:    CategoryStatus,
		Description: "Safety incidents and days without accidents",
		DescriptionLocalized: map[string]string{
			"es": "Incidentes de seguridad y días sin accidentes",
		},
		DefaultVisible: true,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{
					"type":    "integer",
					"minimum": 1,
					"maximum": 50,
					"default": 5,
				},
				"severity": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string", "enum": []string{"minor", "moderate", "severe"}},
					"uniqueItems": true,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code: "mine.widget.chemicals",
		Name: "Chemical Inventory",
		NameLocalized: map[string]string{
			"es": "Inventario de químicos",
		},
		Category:    CategoryInventory,
		Description: "Chemical stock levels in kg and costs in $",
		DescriptionLocalized: map[string]string{
			"es": "Niveles de existencias de químicos en kg y costos en $",
		},
		DefaultVisible: true,
		Schema:         inventorySchema(),
	},
	{
		Code: "mine.widget.explosives",
		Name: "Explosives Inventory",
		NameLocalized: map[string]string{
			"es": "Inventario de explosivos",
		},
		Category:    CategoryInventory,
		Description: "Explosives stock levels and usage",
		DescriptionLocalized: map[string]string{
			"es": "Existencias y uso de explosivos",
		},
		Schema: inventorySchema(),
	},
	{
		Code: "mine.widget.stockpile",
		Name: "Stockpile Volumes",
		NameLocalized: map[string]string{
			"es": "Volúmenes de acopio",
		},
		Category:    CategoryInventory,
		Description: "Crushed and milled ore volumes",
		DescriptionLocalized: map[string]string{
			"es": "Volúmenes de mineral triturado y molido",
		},
	},
	{
		Code: "mine.widget.expenses",
		Name: "Daily Expenses",
		NameLocalized: map[string]string{
			"es": "Gastos diarios",
		},
		Category:    CategoryMetrics,
		Description: "Breakdown of daily operational costs in $",
		DescriptionLocalized: map[string]string{
			"es": "Desglose de costos operativos diarios en $",
		},
	},
	{
		Code: "mine.widget.labor",
		Name: "Labor Metrics",
		NameLocalized: map[string]string{
			"es": "Métricas laborales",
		},
		Category:    CategoryMetrics,
		Description: "Workforce statistics and costs",
		DescriptionLocalized: map[string]string{
			"es": "Estadísticas y costos de la fuerza laboral",
		},
	},
	{
		Code: "mine.widget.environmental",
		Name: "Environmental Impact",
		NameLocalized: map[string]string{
			"es": "Impacto ambiental",
		},
		Category:    CategoryChart,
		Description: "Water usage, emissions, and waste metrics",
		DescriptionLocalized: map[string]string{
			"es": "Uso de agua, emisiones y métricas de residuos",
		},
	},
}

func energyChartSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"source": map[string]any{
				"type":    "string",
				"enum":    []string{"electricity", "diesel", "all"},
				"default": "all",
			},
			"show_cost": map[string]any{
				"type":    "boolean",
				"default": true,
			},
			"theme": map[string]any{
				"type": "string",
			},
		},
		"additionalProperties": false,
	}
}

func inventorySchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"low_stock_threshold": map[string]any{
				"type":    "number",
				"minimum": 0,
			},
			"limit": map[string]any{
				"type":    "integer",
				"minimum": 1,
				"maximum": 100,
				"default": 20,
			},
		},
		"additionalProperties": false,
	}
}

// DefaultWidgetDescriptors returns copies of the built-in mining catalog.
// The order matches the operations console default layout; the five
// trailing widgets start hidden.
func DefaultWidgetDescriptors() []WidgetDescriptor {
	out := make([]WidgetDescriptor, len(defaultWidgetDescriptors))
	copy(out, defaultWidgetDescriptors)
	return out
}
