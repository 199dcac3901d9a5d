package farm

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// User accounts share the record keyspace under a reserved prefix.
// The stored password digest never leaves the chaincode: reads strip
// it and VerifyUser answers with a bare boolean.
const userPrefix = "USER_"

const userDocType = "user"

type User struct {
	DocType  string `json:"docType"`
	Username string `json:"username"`
	HoTen    string `json:"hoTen"`
	Role     string `json:"role"`
	MatKhau  string `json:"matKhau,omitempty"`
}

// hashPassword must be deterministic: chaincode runs on every
// endorsing peer and salted hashes would make endorsements diverge.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (c *FarmContract) CreateUser(ctx contractapi.TransactionContextInterface, username, password, hoTen, role string) (*User, error) {
	return createUser(ctx.GetStub(), username, password, hoTen, role)
}

// VerifyUser checks a credential pair. It reports success or failure
// only; the stored digest is never part of the answer.
func (c *FarmContract) VerifyUser(ctx contractapi.TransactionContextInterface, username, password string) (bool, error) {
	return verifyUser(ctx.GetStub(), username, password)
}

func (c *FarmContract) GetUser(ctx contractapi.TransactionContextInterface, username string) (*User, error) {
	return getUser(ctx.GetStub(), username)
}

func createUser(s State, username, password, hoTen, role string) (*User, error) {
	key := userPrefix + username
	exists, err := docExists(s, key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("user %s %w", username, ErrAlreadyExists)
	}
	user := User{
		DocType:  userDocType,
		Username: username,
		HoTen:    hoTen,
		Role:     role,
		MatKhau:  hashPassword(password),
	}
	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encode user %s: %w", username, err)
	}
	if err := s.PutState(key, data); err != nil {
		return nil, err
	}
	user.MatKhau = ""
	return &user, nil
}

func verifyUser(s State, username, password string) (bool, error) {
	doc, err := getDoc(s, userPrefix+username)
	if err != nil {
		return false, err
	}
	stored, _ := doc["matKhau"].(string)
	return stored == hashPassword(password), nil
}

func getUser(s State, username string) (*User, error) {
	doc, err := getDoc(s, userPrefix+username)
	if err != nil {
		return nil, err
	}
	user, err := docAs[User](doc)
	if err != nil {
		return nil, err
	}
	user.MatKhau = ""
	return user, nil
}
