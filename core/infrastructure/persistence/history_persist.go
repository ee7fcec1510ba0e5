package persistence

import (
	"context"
	"errors"
	"fmt"

	"agari/common/database"
	"agari/common/log"
	"agari/common/utils"
	"agari/core/domain/entity"
	"agari/core/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const historyCollection = "history"

// MongoHistoryRepository ObjectID 在单进程内单调递增，按 _id 倒序即按写入时间倒序
type MongoHistoryRepository struct {
	coll  *mongo.Collection
	limit int
}

func NewMongoHistoryRepository(m *database.MongoManager, limit int) (repository.HistoryRepository, error) {
	if limit <= 0 {
		return nil, repository.ErrInvalidLimit
	}
	return newMongoHistoryRepository(m.Db.Collection(historyCollection), limit), nil
}

func newMongoHistoryRepository(coll *mongo.Collection, limit int) *MongoHistoryRepository {
	return &MongoHistoryRepository{coll: coll, limit: limit}
}

// Append 写入后按保留上限淘汰旧记录
func (r *MongoHistoryRepository) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	doc := bson.M{
		"_id":         entry.ID,
		"hand":        entry.Hand,
		"win":         entry.Win,
		"melds":       entry.Melds,
		"tsumo":       entry.Tsumo,
		"dealer":      entry.Dealer,
		"han":         entry.Han,
		"fu":          entry.Fu,
		"yakuman":     entry.Yakuman,
		"yaku":        entry.Yaku,
		"score":       entry.Score,
		"winner_gain": entry.WinnerGain,
		"error_kind":  entry.ErrorKind,
		"created_at":  entry.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		log.Error("保存计算记录失败: %v", err)
		return fmt.Errorf("%w: %v", repository.ErrMongodb, err)
	}
	return r.EvictBeyond(ctx, r.limit)
}

func (r *MongoHistoryRepository) List(ctx context.Context, limit int) ([]*entity.HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error("查询计算记录失败: %v", err)
		return nil, fmt.Errorf("%w: %v", repository.ErrMongodb, err)
	}
	defer cursor.Close(ctx)

	var result []*entity.HistoryEntry
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			log.Warn("解析计算记录失败: %v", err)
			continue
		}
		if entry := docToHistoryEntry(doc); entry != nil {
			result = append(result, entry)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrMongodb, err)
	}
	return result, nil
}

// EvictBeyond 找到第 keep+1 新的记录，删除它以及更旧的记录
func (r *MongoHistoryRepository) EvictBeyond(ctx context.Context, keep int) error {
	if keep < 0 {
		return repository.ErrInvalidLimit
	}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(int64(keep)).
		SetProjection(bson.M{"_id": 1})

	var boundary struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := r.coll.FindOne(ctx, bson.M{}, opts).Decode(&boundary)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		log.Error("查询淘汰边界失败: %v", err)
		return fmt.Errorf("%w: %v", repository.ErrMongodb, err)
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$lte": boundary.ID}})
	if err != nil {
		log.Error("淘汰计算记录失败: %v", err)
		return fmt.Errorf("%w: %v", repository.ErrMongodb, err)
	}
	log.Debug("淘汰计算记录: count=%d", res.DeletedCount)
	return nil
}

func (r *MongoHistoryRepository) Clear(ctx context.Context) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		log.Error("清空计算记录失败: %v", err)
		return fmt.Errorf("%w: %v", repository.ErrMongodb, err)
	}
	return nil
}

func docToHistoryEntry(doc bson.M) *entity.HistoryEntry {
	id, ok := doc["_id"].(primitive.ObjectID)
	if !ok {
		return nil
	}
	return &entity.HistoryEntry{
		ID:         id,
		Hand:       utils.ToStringArray(doc["hand"]),
		Win:        utils.ToString(doc["win"]),
		Melds:      utils.ToStringArray(doc["melds"]),
		Tsumo:      utils.ToBool(doc["tsumo"]),
		Dealer:     utils.ToBool(doc["dealer"]),
		Han:        utils.ToInt(doc["han"]),
		Fu:         utils.ToInt(doc["fu"]),
		Yakuman:    utils.ToInt(doc["yakuman"]),
		Yaku:       utils.ToStringArray(doc["yaku"]),
		Score:      utils.ToString(doc["score"]),
		WinnerGain: utils.ToInt(doc["winner_gain"]),
		ErrorKind:  utils.ToString(doc["error_kind"]),
		CreatedAt:  utils.ToTime(doc["created_at"]),
	}
}
