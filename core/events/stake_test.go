package events

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestStakedRecord(t *testing.T) {
	account := common.HexToAddress("0x00000000000000000000000000000000000000b1")
	evt := Staked{
		Account:     account,
		Amount:      big.NewInt(1000),
		NewBalance:  big.NewInt(1500),
		TotalStaked: big.NewInt(9000),
	}
	rec := evt.Record()
	if rec.Type != TypeStaked {
		t.Fatalf("type: got %q want %q", rec.Type, TypeStaked)
	}
	if rec.Attributes["addr"] != account.Hex() {
		t.Fatalf("addr attribute: got %q", rec.Attributes["addr"])
	}
	if rec.Attributes["amount"] != "1000" {
		t.Fatalf("amount attribute: got %q", rec.Attributes["amount"])
	}
	if rec.Attributes["newBalance"] != "1500" || rec.Attributes["totalStaked"] != "9000" {
		t.Fatalf("balance attributes: %v", rec.Attributes)
	}
}

func TestRewardAddedRecordOmitsZeroFields(t *testing.T) {
	rec := RewardAdded{Amount: big.NewInt(100)}.Record()
	if rec.Type != TypeRewardAdded {
		t.Fatalf("type: got %q", rec.Type)
	}
	if _, ok := rec.Attributes["rate"]; ok {
		t.Fatal("nil rate serialised")
	}
	if _, ok := rec.Attributes["finishAt"]; ok {
		t.Fatal("zero finishAt serialised")
	}
}

func TestNilAmountFormatsAsZero(t *testing.T) {
	rec := RewardPaid{Account: common.Address{}}.Record()
	if rec.Attributes["amount"] != "0" {
		t.Fatalf("nil amount: got %q", rec.Attributes["amount"])
	}
}
