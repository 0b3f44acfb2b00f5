package wmiops

import (
	"fmt"

	"github.com/mscrnt/wmiq/pkg/wmi"
)

// fakeSession is an in-memory instrumentation backend. FetchClass applies
// the same exact-match semantics WMI gives a WHERE equality predicate.
type fakeSession struct {
	classes map[string][]wmi.Record
	queries map[string][]wmi.Record

	gotFilters  []map[string]interface{}
	invocations []invocation

	invokeCode int32
	invokeErr  error
	err        error
}

type invocation struct {
	class   string
	method  string
	filters map[string]interface{}
}

func (f *fakeSession) Query(wql string) ([]wmi.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.queries[wql], nil
}

func (f *fakeSession) FetchClass(class string, filters map[string]interface{}) ([]wmi.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotFilters = append(f.gotFilters, filters)
	var out []wmi.Record
	for _, rec := range f.classes[class] {
		if recordMatches(rec, filters) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeSession) InvokeMethod(class string, filters map[string]interface{}, method string) (int32, error) {
	f.invocations = append(f.invocations, invocation{class: class, method: method, filters: filters})
	if f.invokeErr != nil {
		return 0, f.invokeErr
	}
	return f.invokeCode, nil
}

func recordMatches(rec wmi.Record, filters map[string]interface{}) bool {
	for k, want := range filters {
		got, ok := rec[k]
		if !ok {
			return false
		}
		if fmt.Sprintf("%v", got) != fmt.Sprintf("%v", want) {
			return false
		}
	}
	return true
}
