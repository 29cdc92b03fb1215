package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/facturapp/facturacion-api/internal/domain"
)

// UsuariosHandler serves /api/usuarios.
type UsuariosHandler struct {
	service domain.UsuarioService
	logger  *zap.Logger
}

func NewUsuariosHandler(service domain.UsuarioService, logger *zap.Logger) *UsuariosHandler {
	return &UsuariosHandler{service: service, logger: logger}
}

type usuarioRequest struct {
	Usuario    string                `json:"usuario"`
	Contrasena string                `json:"contrasena"`
	Nombre     string                `json:"nombre"`
	Apellido   string                `json:"apellido"`
	Rol        domain.Rol            `json:"rol"`
	Estado     domain.EstadoRegistro `json:"estadoUsuario"`
}

type loginRequest struct {
	Usuario    string `json:"usuario"`
	Contrasena string `json:"contrasena"`
}

func (h *UsuariosHandler) handleError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrUsuarioNotFound):
		respondFail(w, http.StatusNotFound, "Usuario no encontrado")
	case errors.Is(err, domain.ErrUsuarioExists):
		respondFail(w, http.StatusConflict, "Ya existe un usuario con ese nombre de usuario")
	case errors.Is(err, domain.ErrHasReferences):
		respondFail(w, http.StatusConflict, "No se puede eliminar el usuario porque tiene historial asociado")
	case errors.Is(err, domain.ErrInvalidInput):
		respondFail(w, http.StatusBadRequest, "Todos los campos son obligatorios")
	default:
		h.logger.Error("usuarios handler error", zap.Error(err))
		respondFail(w, http.StatusInternalServerError, fallback)
	}
}

func (h *UsuariosHandler) List(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.service.List(r.Context())
	if err != nil {
		h.handleError(w, err, "Error al obtener usuarios")
		return
	}
	respondData(w, http.StatusOK, usuarios)
}

func (h *UsuariosHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	usuario, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "Error al obtener usuario")
		return
	}
	respondData(w, http.StatusOK, usuario)
}

func (h *UsuariosHandler) GetByUsuario(w http.ResponseWriter, r *http.Request) {
	usuario, err := h.service.GetByUsuario(r.Context(), urlParam(r, "usuario"))
	if err != nil {
		h.handleError(w, err, "Error al buscar usuario")
		return
	}
	respondData(w, http.StatusOK, usuario)
}

func (h *UsuariosHandler) ExistsByUsuario(w http.ResponseWriter, r *http.Request) {
	existe, err := h.service.ExistsByUsuario(r.Context(), urlParam(r, "usuario"))
	if err != nil {
		h.handleError(w, err, "Error al verificar usuario")
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"existe": existe})
}

func (h *UsuariosHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Usuario == "" || req.Contrasena == "" {
		respondFail(w, http.StatusBadRequest, "Usuario y contraseña son obligatorios")
		return
	}

	usuario, token, err := h.service.Login(r.Context(), req.Usuario, req.Contrasena)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondFail(w, http.StatusUnauthorized, "Credenciales inválidas o usuario inactivo")
			return
		}
		h.handleError(w, err, "Error al iniciar sesión")
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Data:    map[string]any{"usuario": usuario, "token": token},
		Message: "Login exitoso",
	})
}

func (h *UsuariosHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req usuarioRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	usuario := &domain.Usuario{
		Usuario:  req.Usuario,
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Rol:      req.Rol,
		Estado:   req.Estado,
	}

	created, err := h.service.Create(r.Context(), usuario, req.Contrasena)
	if err != nil {
		h.handleError(w, err, "Error al crear usuario")
		return
	}
	respondCreated(w, created, "Usuario creado exitosamente")
}

func (h *UsuariosHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	var req usuarioRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	usuario := &domain.Usuario{
		Usuario:  req.Usuario,
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Rol:      req.Rol,
		Estado:   req.Estado,
	}

	if err := h.service.Update(r.Context(), id, usuario, req.Contrasena); err != nil {
		h.handleError(w, err, "Error al actualizar usuario")
		return
	}
	respondMessage(w, "Usuario actualizado exitosamente")
}

func (h *UsuariosHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		h.handleError(w, err, "Error al eliminar usuario")
		return
	}
	respondMessage(w, "Usuario desactivado exitosamente")
}

func (h *UsuariosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleError(w, err, "Error al eliminar usuario")
		return
	}
	respondMessage(w, "Usuario eliminado permanentemente")
}
