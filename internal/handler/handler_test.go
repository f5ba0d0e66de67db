package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"dxy/internal/config"
	"dxy/internal/dto"
	"dxy/internal/handler"
	"dxy/internal/infra"
	"dxy/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ── Service stubs ─────────────────────────────────────────────────────────────
// Embedding the interface keeps the stubs short; unused methods panic.

type stubVentas struct {
	service.VentaService
	err         error
	imagen      []byte
	descontar   bool
	registrar   dto.RegistrarVentasRequest
	eliminadoID uuid.UUID
}

func (s *stubVentas) Registrar(_ context.Context, req dto.RegistrarVentasRequest) (*dto.RegistrarVentasResponse, error) {
	s.registrar = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.RegistrarVentasResponse{StockDescontado: len(req.Ventas)}, nil
}

func (s *stubVentas) ImportarImagen(_ context.Context, imagen []byte, descontar bool) (*dto.RegistrarVentasResponse, error) {
	s.imagen, s.descontar = imagen, descontar
	if s.err != nil {
		return nil, s.err
	}
	return &dto.RegistrarVentasResponse{}, nil
}

func (s *stubVentas) Eliminar(_ context.Context, id uuid.UUID) error {
	s.eliminadoID = id
	return s.err
}

type stubRespaldo struct {
	service.RespaldoService
	coleccion string
	raw       []byte
}

func (s *stubRespaldo) Importar(_ context.Context, coleccion string, raw []byte) (int, error) {
	if coleccion == "nada" {
		return 0, service.ErrNoEncontrado
	}
	s.coleccion, s.raw = coleccion, raw
	return 3, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func ventasRouter(svc service.VentaService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewVentasHandler(svc)
	r.POST("/ventas", h.Registrar)
	r.POST("/ventas/importar-imagen", h.ImportarImagen)
	r.DELETE("/ventas/:id", h.Eliminar)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func multipartReq(t *testing.T, path, campo string, contenido []byte, extra map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if contenido != nil {
		fw, err := mw.CreateFormFile(campo, "planilla.png")
		require.NoError(t, err)
		_, err = fw.Write(contenido)
		require.NoError(t, err)
	}
	for k, v := range extra {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	req, err := http.NewRequest(http.MethodPost, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// ── Tests: ventas ─────────────────────────────────────────────────────────────

func TestRegistrarVentas_OK(t *testing.T) {
	svc := &stubVentas{}
	w := doJSON(ventasRouter(svc), http.MethodPost, "/ventas", map[string]any{
		"ventas": []map[string]any{
			{"fecha": "2026-03-18", "nombre_producto": "Whey", "monto_total": "1500", "metodo_pago": "Efectivo"},
		},
		"descontar_stock": true,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.registrar.Ventas, 1)
	assert.True(t, svc.registrar.DescontarStock)
	assert.Equal(t, "1500", svc.registrar.Ventas[0].MontoTotal.String())
}

func TestRegistrarVentas_Validacion(t *testing.T) {
	cases := map[string]any{
		"sin ventas":        map[string]any{"ventas": []any{}},
		"fecha invalida":    map[string]any{"ventas": []map[string]any{{"fecha": "18/03/2026", "nombre_producto": "Whey", "monto_total": "10"}}},
		"monto cero":        map[string]any{"ventas": []map[string]any{{"fecha": "2026-03-18", "nombre_producto": "Whey", "monto_total": "0"}}},
		"metodo de pago":    map[string]any{"ventas": []map[string]any{{"fecha": "2026-03-18", "nombre_producto": "Whey", "monto_total": "10", "metodo_pago": "Bitcoin"}}},
		"canal desconocido": map[string]any{"ventas": []map[string]any{{"fecha": "2026-03-18", "nombre_producto": "Whey", "monto_total": "10", "canal": "Feria"}}},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := doJSON(ventasRouter(&stubVentas{}), http.MethodPost, "/ventas", body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		})
	}
}

func TestRegistrarVentas_JSONRoto(t *testing.T) {
	w := doJSON(ventasRouter(&stubVentas{}), http.MethodPost, "/ventas", "{no es json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportarImagen(t *testing.T) {
	svc := &stubVentas{}
	r := ventasRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartReq(t, "/ventas/importar-imagen", "imagen", []byte("png"), map[string]string{"descontar_stock": "true"}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []byte("png"), svc.imagen)
	assert.True(t, svc.descontar)
}

func TestImportarImagen_SinArchivo(t *testing.T) {
	w := httptest.NewRecorder()
	ventasRouter(&stubVentas{}).ServeHTTP(w, multipartReq(t, "/ventas/importar-imagen", "imagen", nil, map[string]string{"descontar_stock": "true"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEliminarVenta_IDInvalido(t *testing.T) {
	w := doJSON(ventasRouter(&stubVentas{}), http.MethodDelete, "/ventas/no-es-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEliminarVenta_OK(t *testing.T) {
	svc := &stubVentas{}
	id := uuid.New()
	w := doJSON(ventasRouter(svc), http.MethodDelete, "/ventas/"+id.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, id, svc.eliminadoID)
}

// ── Tests: error mapping ──────────────────────────────────────────────────────

func TestMapeoDeErrores(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{service.ErrNoEncontrado, http.StatusNotFound},
		{fmt.Errorf("venta: %w", service.ErrNoEncontrado), http.StatusNotFound},
		{service.ErrDuplicado, http.StatusConflict},
		{service.ErrSinCoincidencias, http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: %w", service.ErrAsistente, infra.ErrCircuitOpen), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: %w", service.ErrAsistente, errors.New("timeout")), http.StatusBadGateway},
		{errors.New("imagen inválida"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			id := uuid.New()
			w := doJSON(ventasRouter(&stubVentas{err: tc.err}), http.MethodDelete, "/ventas/"+id.String(), nil)
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), `"detail"`)
		})
	}
}

// ── Tests: respaldo ───────────────────────────────────────────────────────────

func TestImportarRespaldo_CuerpoCrudo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubRespaldo{}
	r := gin.New()
	h := handler.NewRespaldoHandler(svc)
	r.PUT("/respaldo/:coleccion", h.Importar)

	w := doJSON(r, http.MethodPut, "/respaldo/gastos", `{"no":"es un arreglo"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gastos", svc.coleccion)
	assert.JSONEq(t, `{"no":"es un arreglo"}`, string(svc.raw))
	assert.JSONEq(t, `{"coleccion":"gastos","importados":3}`, w.Body.String())

	w = doJSON(r, http.MethodPut, "/respaldo/nada", `[]`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"codigo":"no_encontrado"`)
}

// ── Tests: auth ───────────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("clave1234"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := service.NewAuthService(&config.Config{
		JWTSecret:            "test_jwt_secret_32_chars_minimum!",
		JWTExpirationHours:   8,
		JWTRefreshHours:      24,
		OperadorUsuario:      "dxy",
		OperadorPasswordHash: string(hash),
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewAuthHandler(svc)
	r.POST("/login", h.Login)
	r.POST("/refresh", h.Refresh)

	w := doJSON(r, http.MethodPost, "/login", dto.LoginRequest{Username: "dxy", Password: "clave1234"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)

	w = doJSON(r, http.MethodPost, "/refresh", dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/refresh", dto.RefreshRequest{RefreshToken: resp.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/login", dto.LoginRequest{Username: "dxy", Password: "otraclave"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/login", dto.LoginRequest{Username: "dxy", Password: "12"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
