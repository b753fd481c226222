// Package apitest hosts an in-process stand-in for the contactapi
// backend, implementing the full REST surface the client consumes.
// Integration tests point a real api.Client at Server.URL().
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/abbasza/contactctl/api"
	"github.com/gorilla/mux"
)

type userRecord struct {
	ID           string
	Email        string
	Phone        string
	FirstName    string
	LastName     string
	PasswordHash string
	TokenVersion int
}

func (u *userRecord) username() string {
	if u.Email != "" {
		return u.Email
	}
	return u.Phone
}

type Server struct {
	mu         sync.Mutex
	keyPair    *KeyPair
	httpServer *httptest.Server

	users    map[string]*userRecord
	contacts map[string]map[string]*api.ContactDetail // userID -> contactID -> detail
	nextID   int

	failNextCreateMsg string
}

// FailNextCreate makes the next POST /contact fail with the given
// message, for exercising client-side failure paths.
func (s *Server) FailNextCreate(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNextCreateMsg = message
}

func NewServer() (*Server, error) {
	keyPair, err := NewKeyPair()
	if err != nil {
		return nil, err
	}

	s := &Server{
		keyPair:  keyPair,
		users:    make(map[string]*userRecord),
		contacts: make(map[string]map[string]*api.ContactDetail),
	}

	router := mux.NewRouter()
	router.HandleFunc("/auth/login", s.logIn).Methods("POST")
	router.HandleFunc("/auth/signup", s.signUp).Methods("POST")
	router.HandleFunc("/.well-known/jwks.json", s.jwks).Methods("GET")

	protected := router.NewRoute().Subrouter()
	protected.HandleFunc("/contact", s.contactPage).Methods("GET")
	protected.HandleFunc("/contact", s.createContact).Methods("POST")
	protected.HandleFunc("/contact/s", s.searchContacts).Methods("GET")
	protected.HandleFunc("/contact/{id}", s.getContact).Methods("GET")
	protected.HandleFunc("/contact/{id}", s.updateContact).Methods("PUT")
	protected.HandleFunc("/contact/{id}", s.deleteContact).Methods("DELETE")
	protected.HandleFunc("/user", s.getUser).Methods("GET")
	protected.HandleFunc("/user", s.deleteUser).Methods("DELETE")
	protected.HandleFunc("/user/edit", s.updateUser).Methods("PUT")
	protected.HandleFunc("/user/change-password", s.changePassword).Methods("PUT")
	protected.Use(s.protectedRouteMiddleware)

	s.httpServer = httptest.NewServer(router)

	return s, nil
}

func (s *Server) URL() string {
	return s.httpServer.URL
}

func (s *Server) Close() {
	s.httpServer.Close()
}

// SeedUser registers an account directly & returns a valid bearer token
// for it, so tests can skip the login round-trip.
func (s *Server) SeedUser(email, phone, firstName, lastName, password string) (userID, token string, err error) {
	passwordHash, err := HashPassword(password)
	if err != nil {
		return "", "", err
	}

	s.mu.Lock()
	user := &userRecord{
		ID:           s.newID("u"),
		Email:        email,
		Phone:        phone,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
	}
	s.users[user.ID] = user
	s.contacts[user.ID] = make(map[string]*api.ContactDetail)
	s.mu.Unlock()

	token, err = s.mintToken(user)
	if err != nil {
		return "", "", err
	}

	return user.ID, token, nil
}

// SeedContact inserts a contact for the given user, bypassing the API.
func (s *Server) SeedContact(userID string, detail api.ContactDetail) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	detail.ID = s.newID("c")
	copied := detail
	s.contacts[userID][detail.ID] = &copied

	return detail.ID
}

// ---------------------------------------------------------------------------------//
// Auth handlers
// --------------------------------------------------------------------------------//

func (s *Server) logIn(rw http.ResponseWriter, r *http.Request) {
	data := api.LoginRequest{}
	json.NewDecoder(r.Body).Decode(&data)

	s.mu.Lock()
	user := s.findUserByUsername(data.Username)
	s.mu.Unlock()

	if user == nil || !CheckPasswordHash(data.Password, user.PasswordHash) {
		writeError(rw, "username/password is invalid", http.StatusUnauthorized)
		return
	}

	token, err := s.mintToken(user)
	if err != nil {
		writeError(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(rw, api.LoginResponse{UserID: user.ID, JWT: token}, http.StatusOK)
}

func (s *Server) signUp(rw http.ResponseWriter, r *http.Request) {
	data := api.SignupRequest{}
	json.NewDecoder(r.Body).Decode(&data)

	if data.Email == "" && data.Phone == "" {
		writeError(rw, "an email or phone number is required", http.StatusBadRequest)
		return
	}

	if data.FirstName == "" || data.LastName == "" || data.Password == "" {
		writeError(rw, "firstname, lastname and password are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	username := data.Email
	if username == "" {
		username = data.Phone
	}
	if s.findUserByUsername(username) != nil {
		s.mu.Unlock()
		writeError(rw, "an account with this username already exists", http.StatusConflict)
		return
	}
	s.mu.Unlock()

	passwordHash, err := HashPassword(data.Password)
	if err != nil {
		writeError(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	user := &userRecord{
		ID:           s.newID("u"),
		Email:        data.Email,
		Phone:        data.Phone,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		PasswordHash: passwordHash,
	}
	s.users[user.ID] = user
	s.contacts[user.ID] = make(map[string]*api.ContactDetail)
	s.mu.Unlock()

	writeJSON(rw, api.SignupResponse{UserID: user.ID, Username: user.username()}, http.StatusCreated)
}

func (s *Server) jwks(rw http.ResponseWriter, r *http.Request) {
	key, err := s.keyPair.JWK()
	if err != nil {
		writeError(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(rw, ExportJWKAsJWKS(key), http.StatusOK)
}

// ---------------------------------------------------------------------------------//
// Contact handlers
// --------------------------------------------------------------------------------//

func (s *Server) contactPage(rw http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(requestContextKey("userID")).(string)
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 0 {
		page = 0
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 {
		size = 10
	}

	s.mu.Lock()
	summaries := s.summariesForUser(userID)
	s.mu.Unlock()

	total := len(summaries)
	totalPages := (total + size - 1) / size

	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	content := summaries[start:end]

	writeJSON(rw, api.Page{
		Content:          content,
		TotalPages:       totalPages,
		TotalElements:    total,
		Last:             page >= totalPages-1,
		Size:             size,
		Number:           page,
		First:            page == 0,
		NumberOfElements: len(content),
		Empty:            len(content) == 0,
	}, http.StatusOK)
}

func (s *Server) searchContacts(rw http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(requestContextKey("userID")).(string)
	query := strings.ToLower(r.URL.Query().Get("query"))

	s.mu.Lock()
	matches := []api.ContactSummary{}
	for _, summary := range s.summariesForUser(userID) {
		haystack := strings.ToLower(summary.Title + " " + summary.FirstName + " " + summary.LastName)
		if strings.Contains(haystack, query) {
			matches = append(matches, summary)
		}
	}
	s.mu.Unlock()

	writeJSON(rw, matches, http.StatusOK)
}

func (s *Server) getContact(rw http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(requestContextKey("userID")).(string)

	s.mu.Lock()
	detail, ok := s.contacts[userID][mux.Vars(r)["id"]]
	s.mu.Unlock()

	if !ok {
		writeError(rw, "contact not found", http.StatusNotFound)
		return
	}

	writeJSON(rw, detail, http.StatusOK)
}

func (s *Server) createContact(rw http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(requestContextKey("userID")).(string)

	s.mu.Lock()
	failMsg := s.failNextCreateMsg
	s.failNextCreateMsg = ""
	s.mu.Unlock()
	if failMsg != "" {
		writeError(rw, failMsg, http.StatusBadRequest)
		return
	}

	data := api.ContactRequest{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	if data.FirstName == "" || data.LastName == "" {
		writeError(rw, "firstname and lastname are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	detail := &api.ContactDetail{
		ContactSummary: api.ContactSummary{
			ID:        s.newID("c"),
			Title:     data.Title,
			FirstName: data.FirstName,
			LastName:  data.LastName,
		},
		Emails: data.Emails,
		Phones: data.Phones,
	}
	s.contacts[userID][detail.ID] = detail
	s.mu.Unlock()

	writeJSON(rw, detail, http.StatusCreated)
}

func (s *Server) updateContact(rw http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(requestContextKey("userID")).(string)

	data := api.ContactRequest{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	if data.FirstName == "" || data.LastName == "" {
		writeError(rw, "firstname and lastname are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	detail, ok := s.contacts[userID][mux.Vars(r)["id"]]
	if ok {
		detail.Title = data.Title
		detail.FirstName = data.FirstName
		detail.LastName = data.LastName
		detail.Emails = data.Emails
		detail.Phones = data.Phones
	}
	s.mu.Unlock()

	if !ok {
		writeError(rw, "contact not found", http.StatusNotFound)
		return
	}

	writeJSON(rw, detail, http.StatusOK)
}

func (s *Server) deleteContact(rw http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(requestContextKey("userID")).(string)

	s.mu.Lock()
	_, ok := s.contacts[userID][mux.Vars(r)["id"]]
	delete(s.contacts[userID], mux.Vars(r)["id"])
	s.mu.Unlock()

	if !ok {
		writeError(rw, "contact not found", http.StatusNotFound)
		return
	}

	rw.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------------//
// User handlers
// --------------------------------------------------------------------------------//

func (s *Server) getUser(rw http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(requestContextKey("userID")).(string)

	s.mu.Lock()
	user := s.users[userID]
	s.mu.Unlock()

	writeJSON(rw, api.UserResponse{
		ID:        user.ID,
		Username:  user.username(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, http.StatusOK)
}

func (s *Server) updateUser(rw http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(requestContextKey("userID")).(string)

	data := api.UserRequest{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	if data.Email == "" && data.Phone == "" {
		writeError(rw, "an email or phone number is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	user := s.users[userID]
	user.Email = data.Email
	user.Phone = data.Phone
	user.FirstName = data.FirstName
	user.LastName = data.LastName
	// A username change ends all existing sessions
	user.TokenVersion++
	s.mu.Unlock()

	writeJSON(rw, api.UserResponse{
		ID:        user.ID,
		Username:  user.username(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, http.StatusOK)
}

func (s *Server) changePassword(rw http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(requestContextKey("userID")).(string)

	data := api.ChangePassRequest{}
	json.NewDecoder(r.Body).Decode(&data)

	s.mu.Lock()
	user := s.users[userID]
	s.mu.Unlock()

	if !CheckPasswordHash(data.OldPassword, user.PasswordHash) {
		writeError(rw, "old password is incorrect", http.StatusBadRequest)
		return
	}

	passwordHash, err := HashPassword(data.NewPassword)
	if err != nil {
		writeError(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	user.PasswordHash = passwordHash
	user.TokenVersion++
	s.mu.Unlock()

	writeJSON(rw, map[string]bool{"success": true}, http.StatusOK)
}

func (s *Server) deleteUser(rw http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(requestContextKey("userID")).(string)

	s.mu.Lock()
	delete(s.users, userID)
	delete(s.contacts, userID)
	s.mu.Unlock()

	rw.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func (s *Server) mintToken(user *userRecord) (string, error) {
	claims := TokenClaims{Username: user.username(), TokenVersion: user.TokenVersion}
	claims.Subject = user.ID

	return EncodeJWT(claims, s.keyPair)
}

func (s *Server) findUserByUsername(username string) *userRecord {
	for _, user := range s.users {
		if username != "" && (user.Email == username || user.Phone == username) {
			return user
		}
	}
	return nil
}

func (s *Server) summariesForUser(userID string) []api.ContactSummary {
	summaries := []api.ContactSummary{}
	for _, detail := range s.contacts[userID] {
		summaries = append(summaries, detail.ContactSummary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].LastName != summaries[j].LastName {
			return summaries[i].LastName < summaries[j].LastName
		}
		return summaries[i].FirstName < summaries[j].FirstName
	})

	return summaries
}

func (s *Server) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%v-%v", prefix, s.nextID)
}

func writeJSON(rw http.ResponseWriter, payload interface{}, statusCode int) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(statusCode)
	json.NewEncoder(rw).Encode(payload)
}

func writeError(rw http.ResponseWriter, message string, statusCode int) {
	writeJSON(rw, map[string]string{"message": message}, statusCode)
}
