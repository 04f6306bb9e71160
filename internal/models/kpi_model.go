package models

// CnpjListItem é a linha agregada do action log: empresa (string de exibição) e
// quantidade de ações do jogador no mês.
type CnpjListItem struct {
	Cnpj        string `json:"cnpj" bson:"_id"`
	ActionCount int    `json:"actionCount" bson:"count"`
}

// CnpjKpiData é o KPI bruto de entrega por id normalizado da empresa.
type CnpjKpiData struct {
	ID      string  `json:"id" bson:"_id"`
	Entrega float64 `json:"entrega" bson:"entrega"`
}

type KPIColor string

const (
	KPIGreen  KPIColor = "green"
	KPIYellow KPIColor = "yellow"
	KPIRed    KPIColor = "red"
)

// KPIData é o indicador pronto para exibição.
type KPIData struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Current    float64  `json:"current"`
	Target     float64  `json:"target"`
	Unit       string   `json:"unit"`
	Percentage int      `json:"percentage"`
	Color      KPIColor `json:"color"`
}

// CompanyDisplay: CnpjID nil quando a extração falha; DeliveryKPI nil quando não há KPI.
type CompanyDisplay struct {
	Cnpj        string   `json:"cnpj"`
	CnpjID      *string  `json:"cnpjId,omitempty"`
	ActionCount int      `json:"actionCount"`
	DeliveryKPI *KPIData `json:"deliveryKpi,omitempty"`
}
