package gmcp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	stdsync "sync"

	"github.com/google/uuid"
)

var (
	ErrClosed = fmt.Errorf("transport has been closed")
)

// stdioTransport 标准输入输出上只有一个会话
type stdioTransport struct {
	singleSessionChan chan *stdioSession
	closed            chan struct{}
	closeOnce         stdsync.Once
}

func NewStdioTransport(r io.Reader, w io.Writer) MCPTransport {
	s := &stdioTransport{
		singleSessionChan: make(chan *stdioSession, 1),
		closed:            make(chan struct{}),
	}
	s.singleSessionChan <- newStdioSession(s, r, w)

	return s
}

// Accept 第一次调用返回唯一的会话, 之后阻塞到传输关闭
func (s *stdioTransport) Accept() (Session, error) {
	select {
	case <-s.closed:
		return nil, ErrClosed
	default:
	}

	select {
	case session := <-s.singleSessionChan:
		return session, nil
	case <-s.closed:
		return nil, ErrClosed
	}
}

func (s *stdioTransport) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
	})

	return nil
}

type stdioSession struct {
	id          string
	transport   *stdioTransport
	reader      *bufio.Reader
	writer      io.Writer
	messageChan chan []byte

	mu     stdsync.Mutex
	closed bool
}

func newStdioSession(transport *stdioTransport, r io.Reader, w io.Writer) *stdioSession {
	return &stdioSession{
		id:          uuid.New().String(),
		transport:   transport,
		reader:      bufio.NewReader(r),
		writer:      w,
		messageChan: make(chan []byte, 1024),
	}
}

func (s *stdioSession) SessionID() string {
	return s.id
}

// readerLoop 逐行读取消息, 读到EOF时正常返回
func (s *stdioSession) readerLoop(handle func(s Session, message []byte)) error {
	for {
		line, err := s.reader.ReadBytes('\n')
		if line = bytes.TrimSpace(line); len(line) > 0 {
			handle(s, line)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// writerLoop 写出所有排队的消息, messageChan关闭后结束
func (s *stdioSession) writerLoop() error {
	var writeErr error
	for message := range s.messageChan {
		if writeErr != nil {
			continue
		}
		if _, err := fmt.Fprintf(s.writer, "%s\n", message); err != nil {
			writeErr = err
		}
	}

	return writeErr
}

func (s *stdioSession) send(message []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.messageChan <- message
	return nil
}

// close 停止接收新消息并关闭传输
func (s *stdioSession) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	s.closed = true
	close(s.messageChan)
	return s.transport.Close()
}
