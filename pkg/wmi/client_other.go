//go:build !windows
// +build !windows

package wmi

// Client is a stub on non-Windows platforms. NewClient fails with
// ErrUnsupported so portable callers see one uniform error.
type Client struct {
	host      string
	namespace string
}

// NewClient always fails off Windows.
func NewClient(opts Options) (*Client, error) {
	return nil, ErrUnsupported
}

// Host returns the target computer name.
func (c *Client) Host() string { return c.host }

// Namespace returns the configured namespace.
func (c *Client) Namespace() string { return c.namespace }

func (c *Client) Connect() error { return ErrUnsupported }

func (c *Client) Close() error { return nil }

func (c *Client) Query(wql string) ([]Record, error) { return nil, ErrUnsupported }

func (c *Client) ListClasses() ([]string, error) { return nil, ErrUnsupported }

func (c *Client) ClassProperties(class string) ([]string, error) { return nil, ErrUnsupported }

func (c *Client) InvokeMethod(class string, filters map[string]interface{}, method string) (int32, error) {
	return 0, ErrUnsupported
}
