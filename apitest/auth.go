package apitest

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/lestrrat-go/jwx/jwk"
	"golang.org/x/crypto/bcrypt"
)

type TokenClaims struct {
	Username     string `json:"username"`
	TokenVersion int    `json:"token_version"`
	jwt.StandardClaims
}

type KeyPair struct {
	Kid        string
	PrivateKey *rsa.PrivateKey
	PublicKey  *rsa.PublicKey
}

type JWKS struct {
	Keys []interface{} `json:"keys"`
}

func NewKeyPair() (*KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	return &KeyPair{
		Kid:        "contactapi-key-id",
		PrivateKey: privateKey,
		PublicKey:  &privateKey.PublicKey,
	}, nil
}

func (keyPair *KeyPair) JWK() (jwk.Key, error) {
	keyPairJWK, err := jwk.New(keyPair.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("JWK: %v", err)
	}
	keyPairJWK.Set(jwk.KeyIDKey, keyPair.Kid)

	return keyPairJWK, nil
}

func ExportJWKAsJWKS(key jwk.Key) JWKS {
	return JWKS{Keys: []interface{}{key}}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func EncodeJWT(claims TokenClaims, keyPair *KeyPair) (string, error) {
	claims.IssuedAt = time.Now().Unix()
	token := jwt.NewWithClaims(jwt.GetSigningMethod("RS256"), claims)

	tokenString, err := token.SignedString(keyPair.PrivateKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func DecodeJWT(tokenString string, keyPair *KeyPair) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return keyPair.PublicKey, nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid jwt: %v", err)
	}

	tokenClaims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, fmt.Errorf("unable to assert token.Claims to TokenClaims")
	}

	return tokenClaims, nil
}
