package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/painel-gamificacao/internal/models"
)

var ErrDuplicateActionLog = errors.New("action log already exists")

type ActionLogRepository struct {
	coll *mongo.Collection
}

func NewActionLogRepository(db *mongo.Database) *ActionLogRepository {
	return &ActionLogRepository{coll: db.Collection("action_log")}
}

func (r *ActionLogRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "time", Value: 1}},
		Options: options.Index().SetName("user_time"),
	}
	return ensureIndex(ctx, r.coll, model, "user_time")
}

func (r *ActionLogRepository) Insert(ctx context.Context, a *models.ActionLog) error {
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateActionLog
		}
		return err
	}
	return nil
}

// MonthRange devolve [início do mês, início do mês seguinte) em UTC.
func MonthRange(month time.Time) (time.Time, time.Time) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// ListCnpjs agrega o action log do jogador no mês por empresa.
// Ordem: mais ações primeiro, empate pela string da empresa.
func (r *ActionLogRepository) ListCnpjs(ctx context.Context, playerID string, month time.Time) ([]models.CnpjListItem, error) {
	start, end := MonthRange(month)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"userId": playerID,
			"time":   bson.M{"$gte": start, "$lt": end},
			"cnpj":   bson.M{"$exists": true, "$nin": bson.A{"", nil}},
		}}},
		{{Key: "$group", Value: bson.M{"_id": "$cnpj", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate action_log: %w", err)
	}
	defer cur.Close(ctx)

	list := []models.CnpjListItem{}
	for cur.Next(ctx) {
		var it models.CnpjListItem
		if err := cur.Decode(&it); err != nil {
			return nil, err
		}
		list = append(list, it)
	}
	return list, cur.Err()
}
