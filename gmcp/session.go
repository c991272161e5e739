package gmcp

type Session interface {
	SessionID() string
	readerLoop(handle func(s Session, message []byte)) error
	writerLoop() error
	send(message []byte) error
	// close 之后send返回ErrClosed, writerLoop写完已排队的消息后返回
	close() error
}
