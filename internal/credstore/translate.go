package credstore

import (
	"strconv"

	"inspect-cli/internal/anyval"
)

// rawKeyNames maps store-native attribute keys to stable readable names.
// Keys absent from this table pass through unchanged, which keeps the
// translator forward-compatible with store versions that add attributes.
var rawKeyNames = map[string]string{
	"accc":   "accessControl",
	"agrp":   "accessGroup",
	"pdmn":   "accessible",
	"acct":   "account",
	"klbl":   "applicationLabel",
	"atag":   "applicationTag",
	"atyp":   "authenticationType",
	"decr":   "canDecrypt",
	"drve":   "canDerive",
	"encr":   "canEncrypt",
	"sign":   "canSign",
	"unwp":   "canUnwrap",
	"vrfy":   "canVerify",
	"wrap":   "canWrap",
	"cenc":   "certificateEncoding",
	"ctyp":   "certificateType",
	"icmt":   "comment",
	"cdat":   "creationDate",
	"crtr":   "creator",
	"desc":   "description",
	"esiz":   "effectiveKeySize",
	"gena":   "generic",
	"extr":   "isExtractable",
	"invi":   "isInvisible",
	"nega":   "isNegative",
	"perm":   "isPermanent",
	"sens":   "isSensitive",
	"issr":   "issuer",
	"kcls":   "keyClass",
	"bsiz":   "keySizeInBits",
	"labl":   "label",
	"mdat":   "modificationDate",
	"path":   "path",
	"port":   "port",
	"ptcl":   "protocol",
	"pkhh":   "publicKeyHash",
	"sdmn":   "securityDomain",
	"slnr":   "serialNumber",
	"srvr":   "server",
	"svce":   "service",
	"subj":   "subject",
	"skid":   "subjectKeyID",
	"vwht":   "syncViewHint",
	"sync":   "synchronizable",
	"tkid":   "tokenID",
	"type":   "type",
	"v_Data": "value",
}

// protocolNames decodes the network protocol attribute codes.
var protocolNames = map[string]string{
	"ftp ": "FTP",
	"ftpa": "FTPAccount",
	"http": "HTTP",
	"irc ": "IRC",
	"nntp": "NNTP",
	"pop3": "POP3",
	"smtp": "SMTP",
	"sox ": "SOCKS",
	"imap": "IMAP",
	"ldap": "LDAP",
	"atlk": "AppleTalk",
	"afp ": "AFP",
	"teln": "Telnet",
	"ssh ": "SSH",
	"ftps": "FTPS",
	"htps": "HTTPS",
	"htpx": "HTTPProxy",
	"htsx": "HTTPSProxy",
	"ftpx": "FTPProxy",
	"smb ": "SMB",
	"rtsp": "RTSP",
	"rtsx": "RTSPProxy",
	"daap": "DAAP",
	"eppc": "EPPC",
	"ipp ": "IPP",
	"ntps": "NNTPS",
	"ldps": "LDAPS",
	"tels": "TelnetS",
	"imps": "IMAPS",
	"ircs": "IRCS",
	"pops": "POP3S",
}

// authenticationTypeNames decodes the authentication type attribute codes.
var authenticationTypeNames = map[string]string{
	"ntlm": "NTLM",
	"msna": "MSN",
	"dpaa": "DPA",
	"rpaa": "RPA",
	"http": "HTTPBasic",
	"httd": "HTTPDigest",
	"form": "HTMLForm",
	"dflt": "Default",
}

// accessibilityNames decodes the accessibility tier attribute codes.
var accessibilityNames = map[string]string{
	"ak":   "WhenUnlocked",
	"ck":   "AfterFirstUnlock",
	"dk":   "Always",
	"akpu": "WhenPasscodeSetThisDeviceOnly",
	"aku":  "WhenUnlockedThisDeviceOnly",
	"cku":  "AfterFirstUnlockThisDeviceOnly",
	"dku":  "AlwaysThisDeviceOnly",
}

// Translate maps a raw attribute record into readable form: keys are renamed
// through rawKeyNames, a synthetic "class" entry is added, recognized
// enumeration codes are replaced by their descriptions, booleans become the
// literal strings "true"/"false", and for key-class items the overloaded
// "type" field is renamed to "keyType".
//
// Translate is a pure transform intended to run once per raw record;
// applying it to an already-translated record is not supported.
func Translate(class ItemClass, raw map[string]anyval.Value) map[string]anyval.Value {
	out := make(map[string]anyval.Value, len(raw)+1)
	for k, v := range raw {
		if name, ok := rawKeyNames[k]; ok {
			out[name] = v
		} else {
			out[k] = v
		}
	}

	out["class"] = anyval.Text(class.String())

	if code, ok := out["protocol"].(anyval.Text); ok {
		if name, ok := protocolNames[string(code)]; ok {
			out["protocol"] = anyval.Text(name)
		}
	}
	if code, ok := out["authenticationType"].(anyval.Text); ok {
		if name, ok := authenticationTypeNames[string(code)]; ok {
			out["authenticationType"] = anyval.Text(name)
		}
	}
	if code, ok := out["accessible"].(anyval.Text); ok {
		if name, ok := accessibilityNames[string(code)]; ok {
			out["accessibility"] = anyval.Text(name)
			delete(out, "accessible")
		}
	}

	for k, v := range out {
		if b, ok := v.(anyval.Bool); ok {
			out[k] = anyval.Text(strconv.FormatBool(bool(b)))
		}
	}

	if class == ClassKey {
		if v, ok := out["type"]; ok {
			out["keyType"] = v
			delete(out, "type")
		}
	}

	return out
}
