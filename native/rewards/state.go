package rewards

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// MemoryState is the canonical in-process ProgramState implementation. Reads
// hand out deep copies and writes store deep copies, so a failed operation
// that never commits leaves the state untouched.
type MemoryState struct {
	program     *Program
	checkpoints map[common.Address]*Checkpoint
}

// NewMemoryState constructs an empty state with a zeroed program.
func NewMemoryState() *MemoryState {
	return &MemoryState{
		program: &Program{
			RewardRate:           big.NewInt(0),
			RewardPerTokenStored: big.NewInt(0),
			TotalStaked:          big.NewInt(0),
		},
		checkpoints: make(map[common.Address]*Checkpoint),
	}
}

// Program returns a copy of the stored reward program.
func (s *MemoryState) Program() (*Program, error) {
	return s.program.Clone(), nil
}

// PutProgram replaces the stored reward program.
func (s *MemoryState) PutProgram(program *Program) error {
	if program == nil {
		return ErrNilState
	}
	s.program = program.Clone()
	return nil
}

// Checkpoint returns a copy of the account's checkpoint, materialising the
// implicit zero value on first access.
func (s *MemoryState) Checkpoint(addr common.Address) (*Checkpoint, error) {
	if cp, ok := s.checkpoints[addr]; ok {
		return cp.Clone(), nil
	}
	return &Checkpoint{
		Account:            addr,
		Stake:              big.NewInt(0),
		Rewards:            big.NewInt(0),
		RewardPerTokenPaid: big.NewInt(0),
	}, nil
}

// PutCheckpoint replaces the account's stored checkpoint.
func (s *MemoryState) PutCheckpoint(checkpoint *Checkpoint) error {
	if checkpoint == nil {
		return ErrNilState
	}
	s.checkpoints[checkpoint.Account] = checkpoint.Clone()
	return nil
}
