package lending

import "booknetwork/model"

// Pure lending policy. Ledger facts arrive as arguments so these functions
// never touch a store; the service evaluates them against fresh reads.

// IsLendable: an archived book is never borrowable, whatever shareable says.
func IsLendable(b *model.Book) bool {
	return b.Shareable && !b.Archived
}

func IsOwner(b *model.Book, userID int64) bool {
	return b.OwnerID == userID
}

// CanToggle gates the owner-only shareable/archived flips.
func CanToggle(b *model.Book, userID int64) error {
	if !IsOwner(b, userID) {
		return makeErr(ErrForbidden, "you are not the owner of this book")
	}
	return nil
}

func CanBorrow(b *model.Book, userID int64, alreadyBorrowed bool) error {
	if !IsLendable(b) {
		return makeErr(ErrNotLendable, "this book cannot be borrowed because it is not shareable or it is archived")
	}
	if IsOwner(b, userID) {
		return makeErr(ErrSelfBorrow, "you cannot borrow your own book")
	}
	if alreadyBorrowed {
		return makeErr(ErrAlreadyBorrowed, "you have already borrowed this book")
	}
	return nil
}

// CanReturn gates the borrower-side checks; the open-loan lookup itself is
// the service's job and a miss surfaces as NO_ACTIVE_LOAN there.
func CanReturn(b *model.Book, userID int64) error {
	if !IsLendable(b) {
		return makeErr(ErrNotLendable, "this book cannot be returned because it is not shareable or it is archived")
	}
	if IsOwner(b, userID) {
		return makeErr(ErrSelfBorrow, "you cannot borrow or return your own book")
	}
	return nil
}

// CanApprove gates the lendability check only. Ownership is enforced by the
// awaiting-approval lookup being scoped to the caller's books; a miss
// surfaces as NOT_RETURNED_YET.
func CanApprove(b *model.Book) error {
	if !IsLendable(b) {
		return makeErr(ErrNotLendable, "this book cannot be approved because it is not shareable or it is archived")
	}
	return nil
}
