package message

import (
	"errors"

	"agari/common/log"

	"github.com/nats-io/nats.go"
)

var ErrNotConnected = errors.New("not connected")

type Client interface {
	SendMessage(subject string, data []byte) error
	Close() error
}

// NatsClient 只负责发布，不订阅
type NatsClient struct {
	conn *nats.Conn
}

func NewNatsClient(url, name string) (*NatsClient, error) {
	log.Info("nats 服务正在连接, url:%s", url)
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats 连接断开: %v", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats 重连成功, url:%s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		log.Error("nats 连接错误,err:%v", err)
		return nil, err
	}
	log.Info("nats 连接成功, url:%s", url)
	return &NatsClient{conn: conn}, nil
}

func (nc *NatsClient) IsConnected() bool {
	return nc.conn != nil && nc.conn.IsConnected()
}

func (nc *NatsClient) SendMessage(subject string, data []byte) error {
	if !nc.IsConnected() {
		return ErrNotConnected
	}
	return nc.conn.Publish(subject, data)
}

// Close 先 Drain，保证已发布的消息送达
func (nc *NatsClient) Close() error {
	if nc.conn == nil {
		return nil
	}
	if err := nc.conn.Drain(); err != nil {
		nc.conn.Close()
		return err
	}
	log.Info("NATS 连接已关闭")
	return nil
}
