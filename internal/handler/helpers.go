package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"

	"dxy/internal/apierror"
	"dxy/internal/infra"
	"dxy/internal/model"
	"dxy/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// maxArchivo bounds uploaded photos and audio clips.
const maxArchivo = 10 << 20

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = validate.RegisterValidation("metodo_pago", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		for _, m := range model.MetodosPago {
			if v == m {
				return true
			}
		}
		return false
	})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	return validar(c, req)
}

// bindQuery is bindAndValidate for query strings.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return false
	}
	return validar(c, req)
}

func validar(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// leerArchivo reads a multipart file field, capped at maxArchivo.
func leerArchivo(c *gin.Context, campo string) ([]byte, *multipart.FileHeader, bool) {
	fh, err := c.FormFile(campo)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el archivo '"+campo+"'"))
		return nil, nil, false
	}
	if fh.Size > maxArchivo {
		c.JSON(http.StatusRequestEntityTooLarge, apierror.New("El archivo supera los 10 MB"))
		return nil, nil, false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return nil, nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxArchivo))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return nil, nil, false
	}
	return data, fh, true
}

// responderError maps service errors to status codes. Anything unknown is
// a 400 carrying the service message, like the rest of the API.
func responderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.NewCodigo(apierror.CodigoNoEncontrado, err.Error()))
	case errors.Is(err, service.ErrDuplicado):
		c.JSON(http.StatusConflict, apierror.NewCodigo(apierror.CodigoDuplicado, err.Error()))
	case errors.Is(err, service.ErrSinCoincidencias):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewCodigo(apierror.CodigoSinCoincidencias, err.Error()))
	case errors.Is(err, infra.ErrCircuitOpen):
		c.JSON(http.StatusServiceUnavailable, apierror.NewCodigo(apierror.CodigoAsistenteCaido, "El asistente no responde, intentá en unos minutos"))
	case errors.Is(err, service.ErrAsistente):
		log.Warn().Err(err).Str("path", c.FullPath()).Msg("asistente")
		c.JSON(http.StatusBadGateway, apierror.NewCodigo(apierror.CodigoAsistente, err.Error()))
	default:
		log.Warn().Err(err).Str("path", c.FullPath()).Msg("request rechazado")
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}

// errorInterno is for read paths where the only failure is the database.
func errorInterno(c *gin.Context, err error, msg string) {
	log.Error().Err(err).Str("path", c.FullPath()).Msg(msg)
	c.JSON(http.StatusInternalServerError, apierror.New(msg))
}
