//go:build windows
// +build windows

package wmi

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// ErrNilCreateObject is the error returned if CreateObject returns nil even
// if the error was nil.
var ErrNilCreateObject = errors.New("wmi: create object returned nil")

// S_FALSE is returned by CoInitializeEx if it was already called on this thread.
const sFalse = 0x00000001

var errStopIteration = errors.New("stop iteration")

// Client holds one channel to a WMI namespace. All COM traffic runs on a
// single OS thread owned by the client, so the client may be used from any
// goroutine; calls are serialized. Construct at startup, Close on shutdown.
type Client struct {
	host      string
	namespace string

	mu      sync.Mutex
	calls   chan func()
	stopped chan struct{}
	closed  bool

	// Touched only on the COM thread.
	locator *ole.IDispatch
	service *ole.IDispatch
}

// NewClient initializes COM and creates the WMI locator. The connection to
// the target host is dialed lazily on first use. Callers own the lifecycle:
// Close releases the connection and uninitializes COM.
func NewClient(opts Options) (*Client, error) {
	opts = opts.withDefaults()
	c := &Client{
		host:      opts.Host,
		namespace: opts.Namespace,
		calls:     make(chan func()),
		stopped:   make(chan struct{}),
	}
	startup := make(chan error, 1)
	go c.run(startup)
	if err := <-startup; err != nil {
		return nil, err
	}
	return c, nil
}

// Host returns the target computer name.
func (c *Client) Host() string { return c.host }

// Namespace returns the connected namespace.
func (c *Client) Namespace() string { return c.namespace }

// run owns the COM thread: initialize, serve calls, release everything on
// shutdown.
func (c *Client) run(startup chan<- error) {
	defer close(c.stopped)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		oleErr, ok := err.(*ole.OleError)
		if !ok || (oleErr.Code() != ole.S_OK && oleErr.Code() != sFalse) {
			startup <- fmt.Errorf("wmi: failed to initialize COM: %w", err)
			return
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WbemScripting.SWbemLocator")
	if err != nil {
		startup <- fmt.Errorf("wmi: failed to create locator: %w", err)
		return
	}
	if unknown == nil {
		startup <- ErrNilCreateObject
		return
	}
	defer unknown.Release()

	locator, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		startup <- fmt.Errorf("wmi: locator does not implement IDispatch: %w", err)
		return
	}
	defer locator.Release()
	c.locator = locator

	startup <- nil

	for fn := range c.calls {
		fn()
	}
	if c.service != nil {
		c.service.Release()
		c.service = nil
	}
}

// do runs fn on the COM thread and waits for it.
func (c *Client) do(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	done := make(chan error, 1)
	c.calls <- func() { done <- fn() }
	return <-done
}

// Close releases the connection, the locator, and the COM apartment. It is
// safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.calls)
	c.mu.Unlock()
	<-c.stopped
	return nil
}

// Connect dials SWbemServices for the configured host and namespace. It is
// idempotent; Query and FetchClass call it implicitly.
func (c *Client) Connect() error {
	return c.do(c.connect)
}

// connect runs on the COM thread.
func (c *Client) connect() error {
	if c.service != nil {
		return nil
	}
	serviceRaw, err := oleutil.CallMethod(c.locator, "ConnectServer", c.host, c.namespace)
	if err != nil {
		return fmt.Errorf("wmi: failed to connect to %s on %q: %w", c.namespace, c.host, err)
	}
	c.service = serviceRaw.ToIDispatch()
	return nil
}

// Query executes a WQL query and converts every result object into a Record.
func (c *Client) Query(wql string) ([]Record, error) {
	var records []Record
	err := c.do(func() error {
		if err := c.connect(); err != nil {
			return err
		}
		resultRaw, err := oleutil.CallMethod(c.service, "ExecQuery", wql)
		if err != nil {
			return fmt.Errorf("wmi: failed to execute query %q: %w", wql, err)
		}
		result := resultRaw.ToIDispatch()
		defer result.Release()

		return oleutil.ForEach(result, func(v *ole.VARIANT) error {
			item := v.ToIDispatch()
			defer item.Release()
			records = append(records, objectToRecord(item))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListClasses enumerates class names in the namespace via meta_class. Hosts
// that reject schema queries get the fixed fallback list instead.
func (c *Client) ListClasses() ([]string, error) {
	if err := c.Connect(); err != nil {
		return nil, err
	}
	var classes []string
	err := c.do(func() error {
		resultRaw, err := oleutil.CallMethod(c.service, "ExecQuery", "SELECT * FROM meta_class")
		if err != nil {
			return fmt.Errorf("wmi: failed to query meta_class: %w", err)
		}
		result := resultRaw.ToIDispatch()
		defer result.Release()

		return oleutil.ForEach(result, func(v *ole.VARIANT) error {
			item := v.ToIDispatch()
			defer item.Release()
			if name, err := classNameOf(item); err == nil && name != "" {
				classes = append(classes, name)
			}
			return nil
		})
	})
	if err != nil {
		fallback := make([]string, len(commonClasses))
		copy(fallback, commonClasses)
		sort.Strings(fallback)
		return fallback, nil
	}
	sort.Strings(classes)
	return dedupe(classes), nil
}

// ClassProperties returns the sorted property names of the first instance of
// a class, or an empty slice when the class has no instances.
func (c *Client) ClassProperties(class string) ([]string, error) {
	if !validIdent(class) {
		return nil, fmt.Errorf("wmi: invalid class name %q", class)
	}
	var props []string
	err := c.do(func() error {
		if err := c.connect(); err != nil {
			return err
		}
		resultRaw, err := oleutil.CallMethod(c.service, "ExecQuery", "SELECT * FROM "+class)
		if err != nil {
			return fmt.Errorf("wmi: failed to query class %q: %w", class, err)
		}
		result := resultRaw.ToIDispatch()
		defer result.Release()

		err = oleutil.ForEach(result, func(v *ole.VARIANT) error {
			item := v.ToIDispatch()
			defer item.Release()
			names, err := propertyNames(item)
			if err != nil {
				return err
			}
			props = names
			return errStopIteration
		})
		if err != nil && err != errStopIteration {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(props)
	return props, nil
}

// InvokeMethod calls a parameterless COM method on the first instance
// matching the filters and returns its numeric result code.
func (c *Client) InvokeMethod(class string, filters map[string]interface{}, method string) (int32, error) {
	if !validIdent(method) {
		return 0, fmt.Errorf("wmi: invalid method name %q", method)
	}
	wql, err := BuildSelect(class, filters)
	if err != nil {
		return 0, err
	}
	var (
		code  int32
		found bool
	)
	err = c.do(func() error {
		if err := c.connect(); err != nil {
			return err
		}
		resultRaw, err := oleutil.CallMethod(c.service, "ExecQuery", wql)
		if err != nil {
			return fmt.Errorf("wmi: failed to execute query %q: %w", wql, err)
		}
		result := resultRaw.ToIDispatch()
		defer result.Release()

		err = oleutil.ForEach(result, func(v *ole.VARIANT) error {
			item := v.ToIDispatch()
			defer item.Release()
			retRaw, err := oleutil.CallMethod(item, method)
			if err != nil {
				return fmt.Errorf("wmi: failed to call %s on %s: %w", method, class, err)
			}
			defer retRaw.Clear()
			code, err = variantInt32(retRaw)
			if err != nil {
				return fmt.Errorf("wmi: %s on %s: %w", method, class, err)
			}
			found = true
			return errStopIteration
		})
		if err != nil && err != errStopIteration {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("wmi: no %s instance matches the given filters", class)
	}
	return code, nil
}

// objectToRecord reads every named property off an instrumentation object.
// Properties that cannot be read map to nil rather than failing the row.
func objectToRecord(item *ole.IDispatch) Record {
	names, err := propertyNames(item)
	if err != nil {
		return Record{}
	}
	rec := make(Record, len(names))
	for _, name := range names {
		prop, err := item.GetProperty(name)
		if err != nil {
			rec[name] = nil
			continue
		}
		rec[name] = variantValue(prop)
		prop.Clear()
	}
	return rec
}

// propertyNames enumerates the Properties_ collection of an object. Methods
// live in a separate collection and are never touched.
func propertyNames(item *ole.IDispatch) ([]string, error) {
	propsRaw, err := item.GetProperty("Properties_")
	if err != nil {
		return nil, err
	}
	defer propsRaw.Clear()

	props := propsRaw.ToIDispatch()
	if props == nil {
		return nil, fmt.Errorf("wmi: object has no property collection")
	}

	var names []string
	err = oleutil.ForEach(props, func(v *ole.VARIANT) error {
		prop := v.ToIDispatch()
		defer prop.Release()

		name, err := prop.GetProperty("Name")
		if err != nil {
			return err
		}
		defer name.Clear()
		if s, ok := name.Value().(string); ok {
			names = append(names, s)
		}
		return nil
	})
	return names, err
}

// classNameOf reads the class name from an object's Path_.
func classNameOf(item *ole.IDispatch) (string, error) {
	pathRaw, err := item.GetProperty("Path_")
	if err != nil {
		return "", err
	}
	defer pathRaw.Clear()

	path := pathRaw.ToIDispatch()
	if path == nil {
		return "", fmt.Errorf("wmi: object has no path")
	}
	classRaw, err := path.GetProperty("Class")
	if err != nil {
		return "", err
	}
	defer classRaw.Clear()
	name, _ := classRaw.Value().(string)
	return name, nil
}

// variantValue converts a VARIANT to plain data. List-valued properties
// become []interface{}; embedded objects are not plain data and map to nil.
func variantValue(v *ole.VARIANT) interface{} {
	if v.VT&ole.VT_ARRAY != 0 {
		if sa := v.ToArray(); sa != nil {
			return sa.ToValueArray()
		}
		return nil
	}
	switch v.VT {
	case ole.VT_DISPATCH, ole.VT_UNKNOWN:
		return nil
	default:
		return v.Value()
	}
}

// variantInt32 coerces a method return value to int32.
func variantInt32(v *ole.VARIANT) (int32, error) {
	switch n := v.Value().(type) {
	case int32:
		return n, nil
	case int64:
		return int32(n), nil
	case int16:
		return int32(n), nil
	case int8:
		return int32(n), nil
	case int:
		return int32(n), nil
	case uint32:
		return int32(n), nil
	case uint16:
		return int32(n), nil
	case uint8:
		return int32(n), nil
	default:
		return 0, fmt.Errorf("unexpected return type %T", v.Value())
	}
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
