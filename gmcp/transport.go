package gmcp

type MCPTransport interface {
	Accept() (Session, error)
	Close() error
}
