package wsc

import (
	"crypto/rand"
	"math/big"

	"github.com/abelviageiro/prplMesh/errors"
)

// Diffie-Hellman group 5 (RFC 3526, 1536-bit MODP) parameters used by the
// WSC key agreement.
var (
	dhPrime = mustParseHex(
		"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74" +
			"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437" +
			"4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED" +
			"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05" +
			"98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB" +
			"9ED529077096966D670C354E4ABC9804F1746C08CA237327FFFFFFFFFFFFFFFF")
	dhGenerator = big.NewInt(2)
)

func mustParseHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("wsc: bad DH prime constant")
	}
	return n
}

// KeyExchange holds one side of the WSC Diffie-Hellman agreement. Only the
// key agreement surface lives here; the M2 settings decryption built on top
// of it belongs to the platform's WSC library.
type KeyExchange struct {
	private *big.Int
	public  *big.Int
}

// NewKeyExchange generates a fresh DH keypair.
func NewKeyExchange() (*KeyExchange, error) {
	private, err := rand.Int(rand.Reader, dhPrime)
	if err != nil {
		return nil, errors.WrapTransient(err, "wsc", "NewKeyExchange", "private key generation")
	}
	return &KeyExchange{
		private: private,
		public:  new(big.Int).Exp(dhGenerator, private, dhPrime),
	}, nil
}

// PublicKey returns the public key bytes to place in the M1 frame.
func (k *KeyExchange) PublicKey() []byte {
	return k.public.Bytes()
}

// ComputeKey derives the shared secret from the remote public key.
func (k *KeyExchange) ComputeKey(remotePublic []byte) ([]byte, error) {
	remote := new(big.Int).SetBytes(remotePublic)
	if remote.Sign() <= 0 || remote.Cmp(dhPrime) >= 0 {
		return nil, errors.WrapInvalid(errors.ErrMalformedFrame, "wsc", "ComputeKey", "remote public key range")
	}
	return new(big.Int).Exp(remote, k.private, dhPrime).Bytes(), nil
}
