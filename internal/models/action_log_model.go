package models

import "time"

// ActionLog é o registro bruto de uma ação do jogador contra uma empresa.
type ActionLog struct {
	ID       string    `bson:"_id,omitempty" json:"id"`
	UserID   string    `bson:"userId" json:"userId"`
	ActionID string    `bson:"actionId" json:"actionId"`
	Cnpj     string    `bson:"cnpj" json:"cnpj"` // string de exibição, ex.: "ACME l 01 [500|0001-99]"
	Time     time.Time `bson:"time" json:"time"`
}
