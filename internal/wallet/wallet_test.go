package wallet_test

import (
	"io/fs"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/airdrop-monitor/internal/adapter"
	"github.com/feral-file/airdrop-monitor/internal/domain"
	"github.com/feral-file/airdrop-monitor/internal/mocks"
	"github.com/feral-file/airdrop-monitor/internal/wallet"
)

const (
	aliceAddress = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
	bobAddress   = "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"
)

func TestLoader_LoadFile(t *testing.T) {
	tests := []struct {
		name         string
		content      []byte
		readErr      error
		expectedErr  string
		validateFunc func(t *testing.T, wallets *domain.WalletSet)
	}{
		{
			name:    "keeps file order and checksums addresses",
			content: []byte(`{"zed": "` + bobAddress + `", "alice": "` + aliceAddress + `"}`),
			validateFunc: func(t *testing.T, wallets *domain.WalletSet) {
				assert.Equal(t, []domain.Wallet{
					{Name: "zed", Address: common.HexToAddress(bobAddress)},
					{Name: "alice", Address: common.HexToAddress(aliceAddress)},
				}, wallets.Wallets())
				assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", wallets.Wallets()[1].Address.Hex())
			},
		},
		{
			name:    "duplicate name keeps first position and last address",
			content: []byte(`{"alice": "` + bobAddress + `", "bob": "` + bobAddress + `", "alice": "` + aliceAddress + `"}`),
			validateFunc: func(t *testing.T, wallets *domain.WalletSet) {
				require.Equal(t, 2, wallets.Len())
				assert.Equal(t, "alice", wallets.Wallets()[0].Name)
				assert.Equal(t, common.HexToAddress(aliceAddress), wallets.Wallets()[0].Address)
			},
		},
		{
			name:        "file not found",
			readErr:     fs.ErrNotExist,
			expectedErr: "wallet file not found",
		},
		{
			name:        "not an object",
			content:     []byte(`["` + aliceAddress + `"]`),
			expectedErr: "expected an object of name to address",
		},
		{
			name:        "invalid address",
			content:     []byte(`{"alice": "0x1234"}`),
			expectedErr: `wallet "alice"`,
		},
		{
			name:        "empty object",
			content:     []byte(`{}`),
			expectedErr: "has no wallets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockFS := mocks.NewMockFileSystem(ctrl)
			mockFS.EXPECT().ReadFile("wallets.json").Return(tt.content, tt.readErr)

			wallets, err := wallet.NewLoader(mockFS, adapter.NewJSON()).LoadFile("wallets.json")
			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrConfiguration)
				assert.Contains(t, err.Error(), tt.expectedErr)
				assert.Nil(t, wallets)
				return
			}
			require.NoError(t, err)
			tt.validateFunc(t, wallets)
		})
	}
}

func TestLoader_Load_SingleAddressOverridesFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockFS := mocks.NewMockFileSystem(ctrl)

	wallets, err := wallet.NewLoader(mockFS, adapter.NewJSON()).Load("wallets.json", aliceAddress, "")
	require.NoError(t, err)
	assert.Equal(t, []domain.Wallet{{Name: "0x5aaeb605...", Address: common.HexToAddress(aliceAddress)}}, wallets.Wallets())
}

func TestSingle(t *testing.T) {
	wallets, err := wallet.Single(" "+bobAddress+" ", "treasury")
	require.NoError(t, err)
	assert.Equal(t, []domain.Wallet{{Name: "treasury", Address: common.HexToAddress(bobAddress)}}, wallets.Wallets())

	_, err = wallet.Single("not-an-address", "x")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestLoader_LoadFile_EmptyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := wallet.NewLoader(mocks.NewMockFileSystem(ctrl), adapter.NewJSON()).LoadFile("")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
