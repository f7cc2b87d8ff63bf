package chainsync

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"loansharc-backend/internal/ledger"

	"golang.org/x/crypto/sha3"
)

type Kind string

const (
	KindLoanIssued      Kind = "LoanIssued"
	KindRepaymentMade   Kind = "RepaymentMade"
	KindLoanFullyRepaid Kind = "LoanFullyRepaid"
)

// Event signatures of the credit-loan contract. loanId and borrower are
// indexed, so every event carries three topics; the remaining fields sit
// in the data section as 32-byte words.
var (
	TopicLoanIssued      = eventTopic("LoanIssued(uint256,address,uint256,uint256,uint256,uint256)")
	TopicRepaymentMade   = eventTopic("RepaymentMade(uint256,address,uint256,uint256)")
	TopicLoanFullyRepaid = eventTopic("LoanFullyRepaid(uint256,address,uint256)")
)

func eventTopic(signature string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

type Event interface {
	EventKind() Kind
}

// LoanIssued embeds its own timestamp; the other monetary fields are raw
// 6-decimal scaled integers.
type LoanIssued struct {
	LoanID      uint64
	Borrower    string
	Principal   *big.Int
	ServiceFee  *big.Int
	TotalOwed   *big.Int
	Timestamp   time.Time
	TxHash      string
	BlockNumber int64
}

func (LoanIssued) EventKind() Kind { return KindLoanIssued }

// RepaymentMade carries no timestamp; the handler resolves one from the
// block header.
type RepaymentMade struct {
	LoanID           uint64
	Borrower         string
	Amount           *big.Int
	RemainingBalance *big.Int
	TxHash           string
	BlockNumber      int64
}

func (RepaymentMade) EventKind() Kind { return KindRepaymentMade }

type LoanFullyRepaid struct {
	LoanID      uint64
	Borrower    string
	Timestamp   time.Time
	TxHash      string
	BlockNumber int64
}

func (LoanFullyRepaid) EventKind() Kind { return KindLoanFullyRepaid }

// shape is one structural decode attempt: topic0 plus the expected number
// of 32-byte data words.
type shape struct {
	kind   Kind
	topic0 string
	words  int
	decode func(l *ledger.Log, words []*big.Int) (Event, error)
}

// Attempt order is fixed; the first structural match wins.
var shapes = []shape{
	{KindLoanIssued, TopicLoanIssued, 4, decodeLoanIssued},
	{KindRepaymentMade, TopicRepaymentMade, 2, decodeRepaymentMade},
	{KindLoanFullyRepaid, TopicLoanFullyRepaid, 1, decodeLoanFullyRepaid},
}

// DecodeEvent attempts each known event shape in order. ok=false means no
// shape matched structurally, which is expected for unrelated contract
// activity; the log is simply dropped. A non-nil error means a shape
// matched but its payload would not parse.
func DecodeEvent(l *ledger.Log) (Event, bool, error) {
	if len(l.Topics) != 3 {
		return nil, false, nil
	}
	words, ok := dataWords(l.Data)
	if !ok {
		return nil, false, nil
	}
	for _, s := range shapes {
		if !strings.EqualFold(l.Topics[0], s.topic0) || len(words) != s.words {
			continue
		}
		ev, err := s.decode(l, words)
		if err != nil {
			return nil, true, fmt.Errorf("decode %s: %w", s.kind, err)
		}
		return ev, true, nil
	}
	return nil, false, nil
}

func decodeLoanIssued(l *ledger.Log, words []*big.Int) (Event, error) {
	loanID, borrower, blockNumber, err := commonFields(l)
	if err != nil {
		return nil, err
	}
	return &LoanIssued{
		LoanID:      loanID,
		Borrower:    borrower,
		Principal:   words[0],
		ServiceFee:  words[1],
		TotalOwed:   words[2],
		Timestamp:   time.Unix(words[3].Int64(), 0).UTC(),
		TxHash:      l.TransactionHash,
		BlockNumber: blockNumber,
	}, nil
}

func decodeRepaymentMade(l *ledger.Log, words []*big.Int) (Event, error) {
	loanID, borrower, blockNumber, err := commonFields(l)
	if err != nil {
		return nil, err
	}
	return &RepaymentMade{
		LoanID:           loanID,
		Borrower:         borrower,
		Amount:           words[0],
		RemainingBalance: words[1],
		TxHash:           l.TransactionHash,
		BlockNumber:      blockNumber,
	}, nil
}

func decodeLoanFullyRepaid(l *ledger.Log, words []*big.Int) (Event, error) {
	loanID, borrower, blockNumber, err := commonFields(l)
	if err != nil {
		return nil, err
	}
	return &LoanFullyRepaid{
		LoanID:      loanID,
		Borrower:    borrower,
		Timestamp:   time.Unix(words[0].Int64(), 0).UTC(),
		TxHash:      l.TransactionHash,
		BlockNumber: blockNumber,
	}, nil
}

func commonFields(l *ledger.Log) (loanID uint64, borrower string, blockNumber int64, err error) {
	id, err := topicQuantity(l.Topics[1])
	if err != nil {
		return 0, "", 0, fmt.Errorf("loanId topic: %w", err)
	}
	if !id.IsUint64() {
		return 0, "", 0, fmt.Errorf("loanId %s out of range", id)
	}
	borrower, err = topicAddress(l.Topics[2])
	if err != nil {
		return 0, "", 0, fmt.Errorf("borrower topic: %w", err)
	}
	blockNumber, err = ledger.ParseHexInt64(l.BlockNumber)
	if err != nil {
		return 0, "", 0, fmt.Errorf("blockNumber: %w", err)
	}
	return id.Uint64(), borrower, blockNumber, nil
}

// dataWords splits the log data hex into 32-byte words.
func dataWords(data string) ([]*big.Int, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(data), "0x")
	if len(s)%64 != 0 {
		return nil, false
	}
	words := make([]*big.Int, 0, len(s)/64)
	for i := 0; i < len(s); i += 64 {
		n, ok := new(big.Int).SetString(s[i:i+64], 16)
		if !ok {
			return nil, false
		}
		words = append(words, n)
	}
	return words, true
}

func topicQuantity(topic string) (*big.Int, error) {
	s := strings.TrimPrefix(strings.TrimSpace(topic), "0x")
	if s == "" {
		return nil, fmt.Errorf("empty topic")
	}
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("invalid topic %q", topic)
	}
	return n, nil
}

// topicAddress extracts the 20-byte address right-aligned in a topic.
func topicAddress(topic string) (string, error) {
	s := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(topic), "0x"))
	if len(s) < 40 {
		return "", fmt.Errorf("topic %q too short for address", topic)
	}
	addr := s[len(s)-40:]
	if _, err := hex.DecodeString(addr); err != nil {
		return "", fmt.Errorf("invalid address in topic %q", topic)
	}
	return "0x" + addr, nil
}
