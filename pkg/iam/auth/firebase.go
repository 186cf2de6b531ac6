package auth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/Abraxas-365/careerlens/pkg/logx"
	"github.com/golang-jwt/jwt/v5"
)

const (
	GoogleCertsURL      = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"
	firebaseIssuerBase  = "https://securetoken.google.com/"
	defaultCertLifetime = time.Hour
)

var maxAge = regexp.MustCompile(`max-age=(\d+)`)

// FirebaseVerifier checks Firebase ID tokens: RS256 signatures against
// Google's rotating certificates, audience equal to the project id and
// issuer equal to securetoken.google.com/<project>.
type FirebaseVerifier struct {
	projectID  string
	certsURL   string
	httpClient *http.Client
	now        func() time.Time

	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey
	expires time.Time
}

func NewFirebaseVerifier(projectID string) *FirebaseVerifier {
	return &FirebaseVerifier{
		projectID:  projectID,
		certsURL:   GoogleCertsURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMissingToken()
	}

	claims := jwt.MapClaims{}
	var keysErr error
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no kid header")
		}
		k, err := v.key(ctx, kid)
		if _, ok := errx.As(err); ok {
			keysErr = err
		}
		return k, err
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer(firebaseIssuerBase+v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.now),
	)
	if keysErr != nil {
		return nil, keysErr
	}
	if err != nil {
		return nil, ErrInvalidToken().WithCause(err)
	}
	return claimsFromMap(claims)
}

func (v *FirebaseVerifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	k, ok := v.keys[kid]
	fresh := v.now().Before(v.expires)
	v.mu.RUnlock()
	if ok && fresh {
		return k, nil
	}
	// an unknown kid only triggers a fetch once the cached set has expired
	if fresh {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}

	if err := v.refresh(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	k, ok = v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return k, nil
}

func (v *FirebaseVerifier) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return ErrRegistry.NewWithCause(CodeKeysUnavailable, err)
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return ErrRegistry.NewWithCause(CodeKeysUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrRegistry.New(CodeKeysUnavailable).WithDetail("status", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return ErrRegistry.NewWithCause(CodeKeysUnavailable, err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pem := range certs {
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			logx.Warnf("Skipping unparsable signing certificate %s: %v", kid, err)
			continue
		}
		keys[kid] = pub
	}

	lifetime := defaultCertLifetime
	if m := maxAge.FindStringSubmatch(resp.Header.Get("Cache-Control")); m != nil {
		if secs, err := strconv.Atoi(m[1]); err == nil {
			lifetime = time.Duration(secs) * time.Second
		}
	}

	v.mu.Lock()
	v.keys = keys
	v.expires = v.now().Add(lifetime)
	v.mu.Unlock()

	logx.Debugf("Loaded %d Firebase signing keys, valid for %s", len(keys), lifetime)
	return nil
}
