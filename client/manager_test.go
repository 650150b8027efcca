package client_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/adamwoolhether/courier/client"
	"github.com/adamwoolhether/courier/errs"
	"github.com/adamwoolhether/courier/parse"
	"github.com/adamwoolhether/courier/request"
	"github.com/adamwoolhether/courier/response"
	"github.com/adamwoolhether/courier/transport"
	"github.com/adamwoolhether/courier/transport/mock"
)

const baseURL = "https://example.com/api"

type codableObject struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func newManager(t *testing.T, m mock.Method, opts ...client.Option) (*client.Manager, *mock.Transport) {
	t.Helper()

	tr, err := mock.New(m)
	require.NoError(t, err)

	mgr, err := client.New(baseURL, tr, opts...)
	require.NoError(t, err)

	return mgr, tr
}

// /////////////////////////////////////////////////////////////////

func TestNew_InvalidBaseURL(t *testing.T) {
	tr, err := mock.New(mock.Data(nil, http.StatusOK))
	require.NoError(t, err)

	for _, raw := range []string{"", "not a url", "/relative/path"} {
		t.Run(fmt.Sprintf("%q", raw), func(t *testing.T) {
			_, err := client.New(raw, tr)
			require.ErrorIs(t, err, errs.ErrInvalidValue)

			ve, ok := errs.GetValueError(err)
			require.True(t, ok)
			require.Equal(t, errs.FieldBaseURL, ve.Field)
			require.Equal(t, raw, ve.Value)
		})
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	tr, err := mock.New(mock.Data(nil, http.StatusOK))
	require.NoError(t, err)

	_, err = client.New(baseURL, nil)
	require.True(t, errs.IsFieldErrors(err), "expected field errors, got %v", err)
	require.Equal(t, "This field is required", errs.GetFieldErrors(err).Fields()["transport"])

	_, err = client.New(baseURL, tr, client.WithLogger(nil))
	require.Error(t, err)

	_, err = client.New(baseURL, tr, client.WithTracer(nil))
	require.Error(t, err)
}

// /////////////////////////////////////////////////////////////////

func TestConventions_Data(t *testing.T) {
	mgr, _ := newManager(t, mock.Data([]byte(`{"mockingMethod":"data"}`), http.StatusOK))
	req := request.Request{Method: http.MethodGet, Path: "test"}
	want := map[string]any{"mockingMethod": "data"}

	t.Run("suspend", func(t *testing.T) {
		resp, err := client.Perform(t.Context(), mgr, req, parse.Map(""))
		require.NoError(t, err)
		if diff := cmp.Diff(want, resp.Content); diff != "" {
			t.Fatalf("content mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("callback", func(t *testing.T) {
		done := make(chan struct{})
		var got response.Response[map[string]any]
		var gotErr error

		client.PerformFunc(t.Context(), mgr, req, parse.Map(""), func(r response.Response[map[string]any], err error) {
			got, gotErr = r, err
			close(done)
		})
		<-done

		require.NoError(t, gotErr)
		if diff := cmp.Diff(want, got.Content); diff != "" {
			t.Fatalf("content mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("task", func(t *testing.T) {
		task := client.StartParsed(t.Context(), mgr, req, parse.Map(""))
		<-task.Done()

		resp, err := task.Wait()
		require.NoError(t, err)
		if diff := cmp.Diff(want, resp.Content); diff != "" {
			t.Fatalf("content mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestConventions_Raw(t *testing.T) {
	mgr, _ := newManager(t, mock.Data([]byte("raw"), http.StatusOK))
	req := request.Request{Path: "raw"}

	resp, err := mgr.Do(t.Context(), req)
	require.NoError(t, err)
	require.Equal(t, []byte("raw"), resp.Content)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	type outcome struct {
		resp response.Response[[]byte]
		err  error
	}
	done := make(chan outcome, 1)
	mgr.DoFunc(t.Context(), req, func(r response.Response[[]byte], err error) {
		done <- outcome{r, err}
	})
	got := <-done
	require.NoError(t, got.err)
	require.Equal(t, []byte("raw"), got.resp.Content)

	resp, err = mgr.Start(t.Context(), req).Wait()
	require.NoError(t, err)
	require.Equal(t, []byte("raw"), resp.Content)
}

func TestPerform_Decode(t *testing.T) {
	mgr, _ := newManager(t, mock.JSON(map[string]any{
		"data": codableObject{ID: "1", Title: "test"},
	}, http.StatusOK))

	resp, err := client.Perform(t.Context(), mgr, request.Request{Path: "objects/1"}, parse.Decode[codableObject]("data"))
	require.NoError(t, err)

	if diff := cmp.Diff(codableObject{ID: "1", Title: "test"}, resp.Content); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestPerform_MissingBody(t *testing.T) {
	mgr, _ := newManager(t, mock.Data(nil, http.StatusOK))
	req := request.Request{Path: "empty"}

	raw, err := mgr.Do(t.Context(), req)
	require.NoError(t, err)
	require.Nil(t, raw.Content)

	_, err = client.Perform(t.Context(), mgr, req, parse.Map(""))
	require.ErrorIs(t, err, errs.ErrMissingValue)

	ve, ok := errs.GetValueError(err)
	require.True(t, ok)
	require.Equal(t, errs.FieldContent, ve.Field)

	_, err = client.Perform(t.Context(), mgr, req, parse.Data())
	require.ErrorIs(t, err, errs.ErrMissingValue)
}

func TestPerform_ParseError(t *testing.T) {
	mgr, _ := newManager(t, mock.Data([]byte(`{"a":{}}`), http.StatusOK))

	_, err := client.Perform(t.Context(), mgr, request.Request{}, parse.Map("a.b"))
	require.ErrorIs(t, err, errs.ErrMissingValue)
}

func TestPerform_NilParser(t *testing.T) {
	mgr, _ := newManager(t, mock.Data(nil, http.StatusOK))

	_, err := client.Perform[int](t.Context(), mgr, request.Request{}, nil)
	require.Error(t, err)
}

// /////////////////////////////////////////////////////////////////

func TestTransportError_AllConventions(t *testing.T) {
	scripted := errors.New("scripted failure")
	mgr, _ := newManager(t, mock.Error(scripted))
	req := request.Request{Path: "fail"}

	_, err := mgr.Do(t.Context(), req)
	require.Same(t, scripted, err)

	_, err = client.Perform(t.Context(), mgr, req, parse.Map(""))
	require.Same(t, scripted, err)

	done := make(chan error, 1)
	mgr.DoFunc(t.Context(), req, func(_ response.Response[[]byte], err error) { done <- err })
	require.Same(t, scripted, <-done)

	require.Same(t, scripted, client.StartParsed(t.Context(), mgr, req, parse.Data()).Err())
}

func TestFileNotFound_Propagates(t *testing.T) {
	mgr, _ := newManager(t, mock.File(nil, "invalid", "", http.StatusOK))

	_, err := client.Perform(t.Context(), mgr, request.Request{}, parse.Map(""))
	require.ErrorIs(t, err, mock.ErrFileNotFound)

	var fnf *mock.FileNotFoundError
	require.ErrorAs(t, err, &fnf)
	require.Equal(t, "invalid.json", fnf.Name)
}

func TestInvalidResponse(t *testing.T) {
	mgr, _ := newManager(t, mock.Response(nil))

	_, err := mgr.Do(t.Context(), request.Request{})
	require.ErrorIs(t, err, client.ErrInvalidResponse)
}

func TestTransportFunc(t *testing.T) {
	var seen *http.Request
	tr := transport.Func(func(req *http.Request) (*transport.Reply, error) {
		seen = req
		return nil, nil
	})

	mgr, err := client.New(baseURL, tr)
	require.NoError(t, err)

	_, err = client.Perform(t.Context(), mgr, request.Request{Method: http.MethodDelete, Path: "items/1"}, parse.Data())
	require.ErrorIs(t, err, client.ErrInvalidResponse)

	require.NotNil(t, seen)
	require.Equal(t, http.MethodDelete, seen.Method)
	require.Equal(t, "https://example.com/api/items/1", seen.URL.String())
}

func TestBuildError(t *testing.T) {
	mgr, tr := newManager(t, mock.Data(nil, http.StatusOK))

	_, err := mgr.Do(t.Context(), request.Request{Path: "bad%zzpath"})
	require.ErrorIs(t, err, request.ErrInvalidAddress)

	_, err = mgr.Do(t.Context(), request.Request{Method: "FETCH"})
	require.True(t, errs.IsFieldErrors(err))

	require.Empty(t, tr.Requests(), "nothing should reach the transport")
}

// /////////////////////////////////////////////////////////////////

func TestValidators(t *testing.T) {
	mgr, _ := newManager(t, mock.Data([]byte(`{}`), http.StatusNotFound))
	req := request.Request{}

	_, err := mgr.Do(t.Context(), req)
	require.ErrorIs(t, err, errs.ErrInvalidValue)

	ve, ok := errs.GetValueError(err)
	require.True(t, ok)
	require.Equal(t, errs.FieldStatusCode, ve.Field)
	require.Equal(t, http.StatusNotFound, ve.Value)

	resp, err := mgr.Do(t.Context(), req, client.WithValidators(response.StatusCodes(http.StatusNotFound)))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, err = mgr.Do(t.Context(), req, client.WithValidators())
	require.NoError(t, err)
}

func TestValidators_FirstFailureWins(t *testing.T) {
	mgr, _ := newManager(t, mock.Data([]byte(`{}`), http.StatusOK))

	first := errors.New("first")
	var secondCalled atomic.Bool

	_, err := mgr.Do(t.Context(), request.Request{}, client.WithValidators(
		response.ValidatorFunc(func(response.Response[[]byte]) error { return first }),
		response.ValidatorFunc(func(response.Response[[]byte]) error {
			secondCalled.Store(true)
			return nil
		}),
	))
	require.Same(t, first, err)
	require.False(t, secondCalled.Load())
}

func TestInvalidDoOption(t *testing.T) {
	mgr, tr := newManager(t, mock.Data(nil, http.StatusOK))

	_, err := mgr.Do(t.Context(), request.Request{}, client.WithValidators(nil))
	require.Error(t, err)

	done := make(chan error, 1)
	mgr.DoFunc(t.Context(), request.Request{}, func(_ response.Response[[]byte], err error) { done <- err }, client.WithExecutor(nil))
	require.Error(t, <-done)

	require.Empty(t, tr.Requests())
}

// /////////////////////////////////////////////////////////////////

func TestDefaultHeaders(t *testing.T) {
	mgr, tr := newManager(t, mock.Data([]byte(`{}`), http.StatusOK), client.WithDefaultHeaders(map[string]string{
		request.HeaderAccept:        "application/json",
		request.HeaderAuthorization: "Bearer default",
	}))

	req := request.Request{Headers: map[string]string{"authorization": "Bearer explicit"}}
	_, err := mgr.Do(t.Context(), req)
	require.NoError(t, err)

	sent := tr.Requests()
	require.Len(t, sent, 1)
	require.Equal(t, "application/json", sent[0].Header.Get(request.HeaderAccept))
	require.Equal(t, "Bearer explicit", sent[0].Header.Get(request.HeaderAuthorization))

	require.Equal(t, map[string]string{"authorization": "Bearer explicit"}, req.Headers, "caller's headers must not change")
}

func TestDefaultHeaders_AppendRemove(t *testing.T) {
	mgr, _ := newManager(t, mock.Data(nil, http.StatusOK))

	mgr.AppendDefaultHeader("X-Key", "one", false)
	mgr.AppendDefaultHeader("x-key", "two", false)
	require.Equal(t, map[string]string{"X-Key": "one"}, mgr.DefaultHeaders())

	mgr.AppendDefaultHeader("x-key", "three", true)
	require.Equal(t, map[string]string{"x-key": "three"}, mgr.DefaultHeaders())

	snapshot := mgr.DefaultHeaders()
	snapshot["Other"] = "mutated"
	require.NotContains(t, mgr.DefaultHeaders(), "Other")

	mgr.RemoveDefaultHeader("X-KEY")
	require.Empty(t, mgr.DefaultHeaders())

	mgr.RemoveDefaultHeader("absent")
	require.Empty(t, mgr.DefaultHeaders())
}

func TestDefaultHeaders_Concurrent(t *testing.T) {
	mgr, _ := newManager(t, mock.Data([]byte(`{}`), http.StatusOK))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			mgr.AppendDefaultHeader(fmt.Sprintf("X-%d", i), "v", true)
		}()
		go func() {
			defer wg.Done()
			_, err := mgr.Do(context.Background(), request.Request{})
			if err != nil {
				t.Errorf("Do: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Len(t, mgr.DefaultHeaders(), 20)
}

// /////////////////////////////////////////////////////////////////

func TestWireRequest(t *testing.T) {
	tr := &mockTransport{}
	mgr, err := client.New(baseURL, tr, client.WithDefaultHeaders(map[string]string{request.HeaderAcceptLanguage: "nl"}))
	require.NoError(t, err)

	body, err := request.NewJSONBody(map[string]string{"name": "courier"})
	require.NoError(t, err)

	var matcher requestMatcher
	matcher.method(http.MethodPost).
		url("https://example.com/api/items?id=1&page=2").
		header(request.HeaderContentType, "application/json").
		header(request.HeaderAcceptLanguage, "nl")

	tr.expect(matcher).reply(&transport.Reply{
		StatusCode: http.StatusCreated,
		Header:     http.Header{"Location": {"/api/items/1"}},
		Body:       []byte(`{"id":"1"}`),
	}).Once()

	resp, err := client.Perform(t.Context(), mgr, request.Request{
		Method:     http.MethodPost,
		Path:       "items?id=1",
		Parameters: request.Parameters{{Key: "page", Value: 2}},
		Body:       &body,
	}, parse.Map(""))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "/api/items/1", resp.Header("location"))
	require.Equal(t, map[string]any{"id": "1"}, resp.Content)

	tr.AssertExpectations(t)
}

func TestCancel(t *testing.T) {
	tr := &mockTransport{}
	release := make(chan struct{})
	defer close(release)

	tr.expectAny().blockUntil(release).error(context.Canceled)

	mgr, err := client.New(baseURL, tr)
	require.NoError(t, err)

	task := mgr.Start(t.Context(), request.Request{})
	task.Cancel()

	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task did not resolve after Cancel")
	}
	require.ErrorIs(t, task.Err(), context.Canceled)
}

func TestDo_ContextCanceled(t *testing.T) {
	mgr, tr := newManager(t, mock.Data(nil, http.StatusOK))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := mgr.Do(ctx, request.Request{})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, tr.Requests())
}

func TestWithExecutor(t *testing.T) {
	mgr, _ := newManager(t, mock.Data([]byte(`[1,2]`), http.StatusOK))

	queue := make(chan func(), 1)
	executor := func(fn func()) { queue <- fn }

	var (
		got    []any
		gotErr error
		called bool
	)
	client.PerformFunc(t.Context(), mgr, request.Request{}, parse.Array(""), func(r response.Response[[]any], err error) {
		got, gotErr, called = r.Content, err, true
	}, client.WithExecutor(executor))

	fn := <-queue
	require.False(t, called, "completion must not run before the executor runs it")
	fn()
	require.True(t, called)
	require.NoError(t, gotErr)
	require.Equal(t, []any{float64(1), float64(2)}, got)
}
