package rtc

// BCDToBin decodes a two-digit packed BCD byte. Callers mask status bits first.
func BCDToBin(v byte) int {
	return int(v>>4)*10 + int(v&0x0F)
}

// BinToBCD encodes 0-99 as packed BCD. Values above 99 are reduced mod 100.
func BinToBCD(n int) byte {
	n %= 100
	if n < 0 {
		n += 100
	}
	return byte(n/10)<<4 | byte(n%10)
}

// validBCD reports whether both nibbles are decimal digits.
func validBCD(v byte) bool {
	return v>>4 <= 9 && v&0x0F <= 9
}
