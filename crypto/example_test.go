package crypto_test

import (
	"fmt"

	"github.com/picops/picocrypto/crypto"
)

func ExampleSha256() {
	sum := crypto.Sha256([]byte("This is picocrypto"))
	fmt.Printf("%x\n", sum)
	// Output:
	// 8ddebff3c1b6ab742e4534b4b9f82e9c9fba73aee0a59bd40fde6b536a852ae4
}
