package services

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"

	"funcapp/internal/metrics"
)

// QueueSink 接收单条文本消息。
type QueueSink interface {
	Publish(ctx context.Context, message string) error
}

// listPusher 为 RedisQueue 所需的最小 Redis 能力，便于测试替换。
type listPusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// RedisQueue 使用 Redis 列表作为队列：每条消息 RPUSH 到以队列名为键的列表尾部。
type RedisQueue struct {
	rdb  listPusher
	name string
}

func NewRedisQueue(rdb listPusher, name string) *RedisQueue {
	return &RedisQueue{rdb: rdb, name: name}
}

// Publish 写入一条消息；失败时返回 SinkWriteError。
func (q *RedisQueue) Publish(ctx context.Context, message string) error {
	if message == "" {
		return sinkError(errors.New("empty queue message"))
	}
	if err := q.rdb.RPush(ctx, q.name, message).Err(); err != nil {
		metrics.SinkErrors.WithLabelValues("queue").Inc()
		return sinkError(err)
	}
	metrics.QueueMessagesPublished.Inc()
	return nil
}

// QueueService 将 name 组装为队列消息并投递。
type QueueService struct {
	sink QueueSink
}

func NewQueueService(sink QueueSink) *QueueService { return &QueueService{sink: sink} }

// Send 投递一条 {"name": ...} 消息，返回已投递的消息文本。
func (s *QueueService) Send(ctx context.Context, name string) (string, error) {
	msg, err := EncodeQueueMessage(name)
	if err != nil {
		return "", sinkError(err)
	}
	if err := s.sink.Publish(ctx, msg); err != nil {
		if KindOf(err) == "" {
			err = sinkError(err)
		}
		return "", err
	}
	return msg, nil
}
