package message

import (
	"encoding/json"
	"errors"
	"sync"

	"agari/common/log"
	"agari/core/domain/entity"
)

var ErrPublisherFull = errors.New("publish channel full")

// EvaluatedEvent 每次算点后广播，订阅方可以做统计或回放
type EvaluatedEvent struct {
	Source string               `json:"source"`
	Entry  *entity.HistoryEntry `json:"entry"`
}

type Publisher interface {
	Publish(event *EvaluatedEvent) error
	Close() error
}

// NopPublisher 未配置 nats 时使用
type NopPublisher struct{}

func (NopPublisher) Publish(*EvaluatedEvent) error { return nil }
func (NopPublisher) Close() error                  { return nil }

// NatsPublisher 写入缓冲通道，由后台协程发送，不阻塞请求
type NatsPublisher struct {
	cli       Client
	subject   string
	writeChan chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewNatsPublisher(cli Client, subject string, buffer int) *NatsPublisher {
	p := &NatsPublisher{
		cli:       cli,
		subject:   subject,
		writeChan: make(chan []byte, buffer),
		done:      make(chan struct{}),
	}
	go p.writeChanMessage()
	return p
}

func (p *NatsPublisher) Publish(event *EvaluatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	select {
	case p.writeChan <- data:
		return nil
	default:
		return ErrPublisherFull
	}
}

func (p *NatsPublisher) writeChanMessage() {
	defer close(p.done)
	for data := range p.writeChan {
		if err := p.cli.SendMessage(p.subject, data); err != nil {
			log.Error("nats 发送错误, subject:%s, err:%v", p.subject, err)
		}
	}
}

// Close 发送完缓冲中的事件后关闭连接，Close 之后不能再 Publish
func (p *NatsPublisher) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.writeChan)
		<-p.done
		err = p.cli.Close()
	})
	return err
}
