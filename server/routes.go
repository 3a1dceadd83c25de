package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SvenDH/card-table/deck"
)

type LoginUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

type Cors struct {
	handler http.Handler
}

func (c *Cors) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	c.handler.ServeHTTP(w, r)
}

type Logger struct {
	handler http.Handler
	logger  *zap.Logger
}

func (l *Logger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	l.handler.ServeHTTP(w, r)
	l.logger.Info("request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Duration("took", time.Since(start)))
}

type Router struct {
	addr     string
	repo     *Repository
	auth     *Auth
	wsServer *Server
	mux      http.Handler
	log      *zap.Logger
}

func NewRouter(addr string, repo *Repository, auth *Auth, wsServer *Server, log *zap.Logger) *Router {
	router := &Router{
		addr:     addr,
		repo:     repo,
		auth:     auth,
		wsServer: wsServer,
		log:      log,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", auth.Middleware(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(wsServer, w, r)
	}))
	mux.HandleFunc("/login", router.login)
	mux.HandleFunc("/register", router.register)
	mux.HandleFunc("/decks", auth.Middleware(router.decks))
	router.mux = &Logger{&Cors{mux}, log}
	return router
}

func (router *Router) login(w http.ResponseWriter, r *http.Request) {
	user, ok := router.credentials(w, r)
	if !ok {
		return
	}
	account, err := router.repo.FindUserByName(user.Username)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if account == nil || !account.Password.Valid {
		respondWithError(w, http.StatusForbidden, "unknown user")
		return
	}
	valid, err := ValidatePassword(user.Password, account.Password.String)
	if err != nil || !valid {
		respondWithError(w, http.StatusForbidden, "wrong password")
		return
	}
	token, err := router.auth.CreateToken(account.Name)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "token generation failed")
		return
	}
	respondWithJSON(w, http.StatusOK, token)
}

func (router *Router) register(w http.ResponseWriter, r *http.Request) {
	user, ok := router.credentials(w, r)
	if !ok {
		return
	}
	existing, err := router.repo.FindUserByName(user.Username)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if existing != nil {
		respondWithError(w, http.StatusConflict, "name taken")
		return
	}
	hash, err := GeneratePassword(user.Password)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "hashing failed")
		return
	}
	account, err := router.repo.AddUser(user.Username, hash)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	token, err := router.auth.CreateToken(account.Name)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "token generation failed")
		return
	}
	respondWithJSON(w, http.StatusCreated, token)
}

// decks lets an authenticated user save and list named deck files. Saved
// text must parse before it is accepted.
func (router *Router) decks(w http.ResponseWriter, r *http.Request) {
	name := r.Context().Value(UserContextKey).(string)
	account, err := router.repo.FindUserByName(name)
	if err != nil || account == nil {
		respondWithError(w, http.StatusForbidden, "unknown user")
		return
	}
	switch r.Method {
	case http.MethodGet:
		decks, err := router.repo.ListDecks(account)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "listing failed")
			return
		}
		respondWithJSON(w, http.StatusOK, decks)
	case http.MethodPost:
		var payload struct {
			Name  string `json:"name"`
			Cards string `json:"cards"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if _, err := deck.NewParser().ParseDeck(payload.Name, strings.NewReader(payload.Cards)); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := router.repo.SaveDeck(account, payload.Name, payload.Cards); err != nil {
			respondWithError(w, http.StatusInternalServerError, "saving failed")
			return
		}
		respondWithJSON(w, http.StatusCreated, map[string]string{"status": "saved"})
	default:
		respondWithError(w, http.StatusMethodNotAllowed, "unsupported method")
	}
}

func (router *Router) credentials(w http.ResponseWriter, r *http.Request) (LoginUser, bool) {
	var user LoginUser
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "only POST is allowed")
		return user, false
	}
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return user, false
	}
	if user.Username == "" || user.Password == "" {
		respondWithError(w, http.StatusBadRequest, "username and password are required")
		return user, false
	}
	return user, true
}

func (router *Router) Run() error {
	go router.wsServer.Run()
	router.log.Info("http server started", zap.String("addr", router.addr))
	return http.ListenAndServe(router.addr, router.mux)
}
