package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voyagehq/sofdesk/internal/ai"
	"github.com/voyagehq/sofdesk/internal/model"
	apperr "github.com/voyagehq/sofdesk/internal/pkg/errors"
)

type fakeGateway struct {
	lastReq  ai.Request
	response string
	err      error
}

func (f *fakeGateway) Complete(_ context.Context, req ai.Request) (string, error) {
	f.lastReq = req
	return f.response, f.err
}

func (f *fakeGateway) VisionModel() string {
	return "vision-model"
}

func TestExtract_UnsupportedTypeNamesType(t *testing.T) {
	svc := NewService(&fakeGateway{})
	_, err := svc.Extract(context.Background(), model.RawDocument{
		Bytes:       []byte("hello"),
		ContentType: "text/plain",
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, apperr.ErrUnsupportedType))
	require.Contains(t, err.Error(), "text/plain")
}

func TestExtract_ContentTypeParametersIgnored(t *testing.T) {
	svc := NewService(&fakeGateway{})
	_, err := svc.Extract(context.Background(), model.RawDocument{
		Bytes:       []byte("hello"),
		ContentType: "Text/Plain; charset=utf-8",
	})
	require.True(t, errors.Is(err, apperr.ErrUnsupportedType))
	require.Contains(t, err.Error(), "text/plain")
}

func TestExtract_GarbagePDFFails(t *testing.T) {
	svc := NewService(&fakeGateway{})
	_, err := svc.Extract(context.Background(), model.RawDocument{
		Bytes:       []byte("this is not a pdf"),
		ContentType: "application/pdf",
	})
	require.True(t, errors.Is(err, apperr.ErrExtraction))
}

func TestExtract_ImagePathBuildsDataURI(t *testing.T) {
	gateway := &fakeGateway{response: "MV Atlas\nArrived 10:00"}
	svc := NewService(gateway)

	text, err := svc.Extract(context.Background(), model.RawDocument{
		Bytes:       []byte{0x89, 0x50, 0x4e, 0x47},
		ContentType: "image/png",
	})
	require.NoError(t, err)
	require.Equal(t, "MV Atlas\nArrived 10:00", text)

	require.Equal(t, "vision-model", gateway.lastReq.Model)
	require.Len(t, gateway.lastReq.Messages, 1)
	parts := gateway.lastReq.Messages[0].Parts
	require.Len(t, parts, 2)
	require.Contains(t, parts[0].Text, "Extract ALL text")
	require.True(t, strings.HasPrefix(parts[1].ImageURL, "data:image/png;base64,"))
}

func TestExtract_ImagePathEmptyResponseIsExtractionError(t *testing.T) {
	svc := NewService(&fakeGateway{response: "   "})
	_, err := svc.Extract(context.Background(), model.RawDocument{
		Bytes:       []byte{0x89},
		ContentType: "image/jpeg",
	})
	require.True(t, errors.Is(err, apperr.ErrExtraction))
}

func TestExtract_ImagePathGatewayErrorPropagates(t *testing.T) {
	svc := NewService(&fakeGateway{err: apperr.ErrNoCredential})
	_, err := svc.Extract(context.Background(), model.RawDocument{
		Bytes:       []byte{0x89},
		ContentType: "image/webp",
	})
	require.True(t, errors.Is(err, apperr.ErrNoCredential))
}

func TestParseContentStream(t *testing.T) {
	stream := []byte("BT\n(Statement of Facts) Tj\n0 -14 Td\n[(MV) -250 (Atlas)] TJ\nT*\n(Arrived 10:00) Tj\nET")
	text := parseContentStream(stream)
	require.Contains(t, text, "Statement of Facts")
	require.Contains(t, text, "MVAtlas")
	require.Contains(t, text, "Arrived 10:00")
}

func TestDecodeLiteral(t *testing.T) {
	if got := decodeLiteral([]byte(`a\(b\)c`)); got != "a(b)c" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := decodeLiteral([]byte(`a\040b`)); got != "a b" {
		t.Fatalf("octal escape not decoded: %q", got)
	}
	if got := decodeLiteral([]byte(`line\nnext`)); got != "line\nnext" {
		t.Fatalf("newline escape not decoded: %q", got)
	}
}
