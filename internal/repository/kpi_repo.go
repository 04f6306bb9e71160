package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/painel-gamificacao/internal/models"
)

type KPIRepository struct {
	coll *mongo.Collection
}

func NewKPIRepository(db *mongo.Database) *KPIRepository {
	return &KPIRepository{coll: db.Collection("cnpj_kpis")}
}

// GetKpiData busca o KPI pelo id normalizado. Documento inexistente = (nil, nil).
func (r *KPIRepository) GetKpiData(ctx context.Context, id string) (*models.CnpjKpiData, error) {
	var k models.CnpjKpiData
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&k)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *KPIRepository) Upsert(ctx context.Context, k *models.CnpjKpiData) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": k.ID}, k, options.Replace().SetUpsert(true))
	return err
}
