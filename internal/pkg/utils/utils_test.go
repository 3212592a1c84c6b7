package utils_test

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sequencer_gateway/internal/pkg/utils"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSelectorFromName(t *testing.T) {
	assert.Equal(t, "0x83afd3f4caedc6eebf44246fe54e38c95e3179a5ec9ea81740eca5b482d12e", utils.GetSelectorFromName("transfer"))
	assert.Equal(t, "0x2e4263afad30923c891518314c3c95dbe830a16874e8abc5777a9a20b54c76e", utils.GetSelectorFromName("balanceOf"))
}

func TestStarknetKeccakFitsIn250Bits(t *testing.T) {
	v := utils.StarknetKeccak([]byte("any entry point name"))
	assert.LessOrEqual(t, v.BitLen(), 250)
}

func TestParseBigInt(t *testing.T) {
	v, err := utils.ParseBigInt("0x1f")
	require.NoError(t, err)
	assert.Equal(t, int64(31), v.Int64())

	v, err = utils.ParseBigInt("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.Int64())

	_, err = utils.ParseBigInt("-1")
	require.Error(t, err)
	_, err = utils.ParseBigInt("zz")
	require.Error(t, err)
}

func TestNormalizeHex(t *testing.T) {
	h, err := utils.NormalizeHex("0x000ABC")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", h)

	h, err = utils.NormalizeHex("255")
	require.NoError(t, err)
	assert.Equal(t, "0xff", h)
}

func TestHexAndDecimalRendering(t *testing.T) {
	assert.Equal(t, "0x0", utils.ToHex(nil))
	assert.Equal(t, "0x1", utils.ToHexOr(nil, 1))
	assert.Equal(t, "0x10", utils.ToHexOr(big.NewInt(16), 1))

	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	assert.Equal(t, []string{"1", "123456789012345678901234567890", "0"},
		utils.ToDecimalStrings([]*big.Int{big.NewInt(1), huge, nil}))
	assert.Equal(t, []string{}, utils.ToDecimalStrings(nil))
}

func TestBigIntFromAny(t *testing.T) {
	assert.Equal(t, int64(7), utils.BigIntFromAny(big.NewInt(7)).Int64())
	assert.Equal(t, int64(26), utils.BigIntFromAny("0x1a").Int64())
	assert.Equal(t, int64(3), utils.BigIntFromAny(float64(3)).Int64())
	assert.Nil(t, utils.BigIntFromAny(1.5))
	assert.Nil(t, utils.BigIntFromAny(true))
}

func TestCompressProgram(t *testing.T) {
	program := `{"prime":"0x800000000000011000000000000000000000000000000000000000000000001","data":["0x1"]}`

	fromObject, err := utils.CompressProgram([]byte(program))
	require.NoError(t, err)
	out, err := utils.DecompressProgram(fromObject)
	require.NoError(t, err)
	assert.JSONEq(t, program, string(out))

	quoted := `"` + strings.ReplaceAll(program, `"`, `\"`) + `"`
	fromString, err := utils.CompressProgram([]byte(quoted))
	require.NoError(t, err)
	out, err = utils.DecompressProgram(fromString)
	require.NoError(t, err)
	assert.Equal(t, program, string(out))

	_, err = utils.CompressProgram(nil)
	require.Error(t, err)
}

func TestRandomFeltIsFieldElement(t *testing.T) {
	a, err := utils.RandomFelt()
	require.NoError(t, err)
	b, err := utils.RandomFelt()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	v, err := utils.ParseBigInt(a)
	require.NoError(t, err)
	assert.Negative(t, v.Cmp(fp.Modulus()))
}

func TestLoadCompiledContract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contract.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"program":{"data":[]},"entry_points_by_type":{"EXTERNAL":[]},"abi":[]}`), 0o600))

	c, err := utils.LoadCompiledContract(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(c.Program))
	assert.JSONEq(t, `{"EXTERNAL":[]}`, string(c.EntryPointsByType))

	require.NoError(t, os.WriteFile(path, []byte(`{"abi":[]}`), 0o600))
	_, err = utils.LoadCompiledContract(path)
	require.Error(t, err)
}

func TestUniqueStrings(t *testing.T) {
	assert.Equal(t, []string{"0x1", "0x2"}, utils.UniqueStrings([]string{"0x1", "0x2", "0x1"}))
}
