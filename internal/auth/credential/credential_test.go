package credential_test

import (
	"testing"

	"chillguy-miniapp/internal/auth/credential"

	"github.com/go-faster/errors"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		urlToken string
		pc       credential.PlatformContext
		want     credential.Credential
		wantErr  error
	}{
		{
			name:     "urlTokenWins",
			urlToken: "one-time",
			pc: credential.PlatformContext{
				InsideTelegram: true,
				InitData:       "query_id=abc",
			},
			want: credential.UrlToken{Value: "one-time"},
		},
		{
			name: "initDataInsideTelegram",
			pc: credential.PlatformContext{
				InsideTelegram: true,
				InitData:       "query_id=abc",
			},
			want: credential.PlatformIdentity{Raw: "query_id=abc"},
		},
		{
			name: "insideTelegramWithoutInitData",
			pc: credential.PlatformContext{
				InsideTelegram: true,
			},
			wantErr: credential.ErrHostIdentityUnavailable,
		},
		{
			name: "plainBrowserWithoutToken",
			pc:   credential.PlatformContext{},
			want: credential.None{},
		},
		{
			name:     "urlTokenOutsideTelegram",
			urlToken: "support-link",
			pc:       credential.PlatformContext{},
			want:     credential.UrlToken{Value: "support-link"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := credential.Resolve(tc.urlToken, tc.pc)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Resolve() = %#v, want %#v", got, tc.want)
			}
		})
	}
}
